// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI surface of cortex: argument parsing
// and the handlers for ask, chat, contexts, ingest, ingest-file, status,
// and config. The handlers share the api client and configuration with the
// TUI; they exist for scripting and for terminals where a full-screen
// interface is unwanted.
package cli
