// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the session view component for the TUI.
//
// This file defines all Bubble Tea message types used by the session
// interface. Messages are organized into the following categories:
//   - Backend: Health check results
//   - Contexts: Directory refresh results
//   - Chat: Completed exchanges with the active context
//   - Ingestion: Repo and file ingestion outcomes
//   - Status: Transient status line expiry
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import "time"

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// BackendStatusMsg reports the result of a backend health check.
type BackendStatusMsg struct {
	Running bool
	Err     error
}

// =============================================================================
// CONTEXT DIRECTORY MESSAGES
// =============================================================================

// ContextsLoadedMsg delivers a fresh context directory listing.
type ContextsLoadedMsg struct {
	Contexts []string
	Err      error
}

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatReplyMsg delivers the outcome of a chat exchange. ContextID names the
// context the question was sent to, which may no longer be the active one.
type ChatReplyMsg struct {
	ContextID string
	Response  string
	Err       error
}

// =============================================================================
// INGESTION MESSAGES
// =============================================================================

// IngestKind distinguishes the two ingestion triggers.
type IngestKind int

const (
	IngestRepo IngestKind = iota
	IngestFile
)

// IngestDoneMsg signals that an ingestion finished, successfully or not.
type IngestDoneMsg struct {
	Kind      IngestKind
	ContextID string
	Err       error
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// statusExpiredMsg clears a transient status line after its display window.
// The generation counter prevents an old timer from clearing a newer status.
type statusExpiredMsg struct {
	gen int
}

// statusDisplayDuration is how long transient status messages stay visible.
const statusDisplayDuration = 5 * time.Second
