// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the session view component for the TUI.
//
// This file implements the Update function, the single message router of
// the session UI. Backend results always settle against the Session, which
// decides whether a reply still belongs to the visible transcript.
package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cortex-tui/internal/api"
	"github.com/jeranaias/cortex-tui/internal/model"
)

// Update routes all Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case BackendStatusMsg:
		return m, m.handleBackendStatus(msg)

	case ContextsLoadedMsg:
		return m, m.handleContextsLoaded(msg)

	case ChatReplyMsg:
		return m, m.handleChatReply(msg)

	case IngestDoneMsg:
		return m, m.handleIngestDone(msg)

	case statusExpiredMsg:
		if msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil
	}

	// Internal widget messages, e.g. cursor blinks and the filepicker's
	// directory reads.
	switch m.overlay {
	case overlayUpload:
		if m.uploadForm != nil {
			return m, m.uploadForm.Update(msg)
		}
	case overlayIngest:
		if m.ingestForm != nil {
			return m, m.ingestForm.Update(msg)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	transcriptWidth := m.width - m.sidebarWidth - 4
	if transcriptWidth < 20 {
		transcriptWidth = 20
	}
	// Header, input box, and status bar claim five rows.
	transcriptHeight := m.height - 5
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	if !m.ready {
		m.viewport = m.newViewport(transcriptWidth, transcriptHeight)
		m.ready = true
	} else {
		m.viewport.Width = transcriptWidth
		m.viewport.Height = transcriptHeight
	}

	m.input.Width = transcriptWidth - 4
	if m.md.Width() != transcriptWidth-2 {
		m.md = newMarkdownRenderer(transcriptWidth - 2)
	}
	m.refreshTranscript()
	return nil
}

// =============================================================================
// KEY ROUTING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works from anywhere.
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp:
		if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Help) {
			m.overlay = overlayNone
		}
		return m, nil
	case overlayIngest:
		return m.handleIngestFormKey(msg)
	case overlayUpload:
		return m.handleUploadFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, LoadContextsCmd(m.client)

	case key.Matches(msg, m.keys.Ingest):
		return m, m.openIngestForm()

	case key.Matches(msg, m.keys.Upload):
		return m, m.openUploadForm()
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusSidebar
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.session.ContextCount()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Submit):
		contexts := m.session.Contexts()
		if m.cursor < len(contexts) {
			if m.session.SelectContext(contexts[m.cursor]) {
				m.refreshTranscript()
			}
			m.focus = focusInput
			m.input.Focus()
		}
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.sendMessage()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SENDING
// =============================================================================

// sendMessage runs the optimistic-append protocol: the user line lands in
// the transcript immediately, then the backend call goes out. The Session
// rejects sends while a reply for the active context is pending.
func (m *Model) sendMessage() tea.Cmd {
	text := m.input.Value()

	sent, err := m.session.BeginSend(text)
	switch {
	case errors.Is(err, model.ErrEmptyMessage):
		return nil
	case errors.Is(err, model.ErrNoActiveContext):
		return m.setStatus(statusWarn, "Select a context first (Tab, then Enter)")
	case errors.Is(err, model.ErrChatInFlight):
		return m.setStatus(statusWarn, "Waiting for the current reply")
	case err != nil:
		return m.setStatus(statusError, err.Error())
	}

	m.input.Reset()
	m.refreshTranscript()
	m.viewport.GotoBottom()

	// BeginSend trims the input, so the sent content comes from the
	// appended message rather than the raw input value.
	return SendChatCmd(m.client, m.session.ActiveContext(), sent.Content)
}

// =============================================================================
// FORMS
// =============================================================================

func (m *Model) openIngestForm() tea.Cmd {
	if m.session.Ingesting() {
		return m.setStatus(statusWarn, "An ingestion is already running")
	}
	m.overlay = overlayIngest
	m.ingestForm = newIngestForm()
	m.input.Blur()
	return nil
}

func (m *Model) openUploadForm() tea.Cmd {
	if m.session.Ingesting() {
		return m.setStatus(statusWarn, "An ingestion is already running")
	}
	m.overlay = overlayUpload
	m.uploadForm = newUploadForm(m.session.ActiveContext())
	m.input.Blur()
	return m.uploadForm.Init()
}

func (m *Model) closeOverlay() {
	m.overlay = overlayNone
	m.ingestForm = nil
	m.uploadForm = nil
	if m.focus == focusInput {
		m.input.Focus()
	}
}

func (m *Model) handleIngestFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		repoURL, repoName, ok := m.ingestForm.Submit()
		if !ok {
			return m, nil
		}
		if err := m.session.BeginIngest(); err != nil {
			m.closeOverlay()
			return m, m.setStatus(statusWarn, "An ingestion is already running")
		}
		m.closeOverlay()
		return m, tea.Batch(
			m.setStatus(statusInfo, "Ingesting "+repoName+"..."),
			IngestRepoCmd(m.client, repoURL, repoName),
		)
	}
	return m, m.ingestForm.Update(msg)
}

func (m *Model) handleUploadFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeOverlay()
		return m, nil
	case key.Matches(msg, m.keys.Submit) && m.uploadForm.stage == stageNameContext:
		path, contextID, ok := m.uploadForm.Submit()
		if !ok {
			return m, nil
		}
		if err := m.session.BeginIngest(); err != nil {
			m.closeOverlay()
			return m, m.setStatus(statusWarn, "An ingestion is already running")
		}
		m.closeOverlay()
		return m, tea.Batch(
			m.setStatus(statusInfo, "Uploading into "+contextID+"..."),
			IngestFileCmd(m.client, path, contextID),
		)
	}
	return m, m.uploadForm.Update(msg)
}

// =============================================================================
// BACKEND RESULTS
// =============================================================================

func (m *Model) handleBackendStatus(msg BackendStatusMsg) tea.Cmd {
	m.backendChecked = true
	m.backendUp = msg.Running
	if !msg.Running {
		return m.setStatus(statusError, "Backend unreachable at "+m.client.BaseURL())
	}
	return nil
}

func (m *Model) handleContextsLoaded(msg ContextsLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		return m.setStatus(statusError, "Could not load contexts: "+humanizeError(msg.Err))
	}

	m.session.SetContexts(msg.Contexts)
	m.backendUp = true
	m.backendChecked = true

	if count := m.session.ContextCount(); m.cursor >= count && count > 0 {
		m.cursor = count - 1
	}

	// Auto-select on first load so the user can type immediately.
	if !m.session.HasActiveContext() {
		m.autoSelect()
	}
	return nil
}

// autoSelect picks the configured default context when the directory has
// it, otherwise the first entry.
func (m *Model) autoSelect() {
	contexts := m.session.Contexts()
	if len(contexts) == 0 {
		return
	}
	target := contexts[0]
	for i, id := range contexts {
		if id == m.defaultContext {
			target = id
			m.cursor = i
			break
		}
	}
	if m.session.SelectContext(target) {
		m.refreshTranscript()
	}
}

func (m *Model) handleChatReply(msg ChatReplyMsg) tea.Cmd {
	if msg.Err != nil {
		m.session.FailSend(msg.ContextID, humanizeError(msg.Err))
	} else {
		m.session.CompleteSend(msg.ContextID, msg.Response)
	}
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return nil
}

func (m *Model) handleIngestDone(msg IngestDoneMsg) tea.Cmd {
	m.session.EndIngest()

	if msg.Err != nil {
		return m.setStatus(statusError, "Ingestion failed: "+humanizeError(msg.Err))
	}

	status := m.setStatus(statusOK, "Ingested "+msg.ContextID)
	if msg.ContextID != "" {
		// Prefer the fresh context once the directory refresh lands.
		m.defaultContext = msg.ContextID
	}
	return tea.Batch(status, LoadContextsCmd(m.client))
}

// humanizeError converts client errors into status-line friendly text.
func humanizeError(err error) string {
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Message
	}
	return err.Error()
}
