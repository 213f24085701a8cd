// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Cortex backend.
package api

import (
	"strings"
	"unicode"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	ContextID string `json:"context_id"`
	Message   string `json:"message"`
}

// IngestRequest is the body of POST /ingest.
type IngestRequest struct {
	RepoURL  string `json:"repo_url"`
	RepoName string `json:"repo_name"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the body of a successful POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// IngestResponse is the body of a successful POST /ingest.
type IngestResponse struct {
	Status    string `json:"status"`
	ContextID string `json:"context_id"`
}

// HealthResponse is the body of GET /.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorDetail is the FastAPI-style error body the backend returns on
// non-2xx statuses.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// =============================================================================
// CONTEXT NAMES
// =============================================================================

// SanitizeContextName mirrors the backend's name sanitation: everything but
// letters, digits, '_' and '-' is dropped. The server remains authoritative;
// this exists so the UI can show the identifier an ingestion will produce.
func SanitizeContextName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
