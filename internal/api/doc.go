// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package api provides the HTTP client for the Cortex backend.

The backend owns every heavy concern: ingestion, embedding, retrieval, and
response generation. This client speaks its four-endpoint contract:

	GET  /              health check
	GET  /contexts      list ingested context identifiers
	POST /chat          {context_id, message} -> {response}
	POST /ingest        {repo_url, repo_name} -> {status, context_id}
	POST /ingest/file   multipart file + context_id

Errors are typed (ClientError) with sentinels for the conditions callers
branch on: backend unreachable, timeout, unknown context. Non-2xx responses
carry a FastAPI-style {detail} body which is folded into the error message
when present.

Short calls (health, contexts) are bounded by the configured timeout. Chat
and ingestion are not bounded client-side: the backend clones, embeds, or
runs inference synchronously inside the request, and how long that takes is
its concern. Cancellation is via context.
*/
package api
