// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the session view component for the TUI.
//
// This file defines the tea.Cmd functions that perform backend I/O. Each
// command runs in its own goroutine and resolves to one of the message
// types in messages.go; the update loop never talks to the network.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cortex-tui/internal/api"
)

// listTimeout bounds the quick read-only calls. Chat and ingestion run
// without a deadline because the backend does its work synchronously
// inside the request.
const listTimeout = 10 * time.Second

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// CheckBackendCmd probes the backend root endpoint.
func CheckBackendCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		if err := client.CheckRunning(ctx); err != nil {
			return BackendStatusMsg{Running: false, Err: err}
		}
		return BackendStatusMsg{Running: true}
	}
}

// LoadContextsCmd fetches the context directory.
func LoadContextsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		contexts, err := client.ListContexts(ctx)
		return ContextsLoadedMsg{Contexts: contexts, Err: err}
	}
}

// =============================================================================
// CHAT COMMANDS
// =============================================================================

// SendChatCmd posts a question to the given context and resolves to the
// reply. The context ID rides along so the session can discard the reply
// if the user has switched contexts in the meantime.
func SendChatCmd(client *api.Client, contextID, message string) tea.Cmd {
	return func() tea.Msg {
		response, err := client.Chat(context.Background(), contextID, message)
		return ChatReplyMsg{ContextID: contextID, Response: response, Err: err}
	}
}

// =============================================================================
// INGESTION COMMANDS
// =============================================================================

// IngestRepoCmd triggers ingestion of a remote repository.
func IngestRepoCmd(client *api.Client, repoURL, repoName string) tea.Cmd {
	return func() tea.Msg {
		id, err := client.IngestRepo(context.Background(), repoURL, repoName)
		return IngestDoneMsg{Kind: IngestRepo, ContextID: id, Err: err}
	}
}

// IngestFileCmd uploads a local file into the named context.
func IngestFileCmd(client *api.Client, path, contextID string) tea.Cmd {
	return func() tea.Msg {
		err := client.IngestFilePath(context.Background(), path, contextID)
		return IngestDoneMsg{Kind: IngestFile, ContextID: contextID, Err: err}
	}
}

// =============================================================================
// STATUS COMMANDS
// =============================================================================

// expireStatusCmd schedules the status line to clear after its window.
func expireStatusCmd(gen int) tea.Cmd {
	return tea.Tick(statusDisplayDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{gen: gen}
	})
}
