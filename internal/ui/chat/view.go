// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the session view component for the TUI.
//
// This file implements rendering. The layout is a header row, a sidebar
// and transcript side by side, the input box, and a status bar. Modal
// overlays are centered on top of the whole frame.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cortex-tui/internal/model"
	"github.com/jeranaias/cortex-tui/internal/ui/styles"
	"github.com/jeranaias/cortex-tui/internal/util"
)

// View renders the whole session UI.
func (m *Model) View() string {
	if !m.ready || m.width == 0 {
		return "Initializing..."
	}

	main := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.viewport.View()),
		m.renderInput(),
		m.renderStatusBar(),
	)

	switch m.overlay {
	case overlayIngest:
		return m.renderOverlay(m.renderIngestForm())
	case overlayUpload:
		return m.renderOverlay(m.renderUploadForm())
	case overlayHelp:
		return m.renderOverlay(m.renderHelp())
	}
	return main
}

// newViewport creates the transcript viewport with navigation keys left to
// the model, which routes them explicitly.
func (m *Model) newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.KeyMap = viewport.KeyMap{}
	return vp
}

// =============================================================================
// HEADER
// =============================================================================

func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Cortex")

	connection := m.theme.StatusWarning.Render(styles.StatusIndicators.Busy + " checking")
	if m.backendChecked {
		if m.backendUp {
			connection = m.theme.StatusOK.Render(styles.StatusIndicators.Connected + " connected")
		} else {
			connection = m.theme.StatusError.Render(styles.StatusIndicators.Error + " offline")
		}
	}

	active := "no context"
	if m.session.HasActiveContext() {
		active = m.session.ActiveContext()
	}
	subtitle := m.theme.HeaderSubtitle.Render(active)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(subtitle) - lipgloss.Width(connection) - 6
	if gap < 1 {
		gap = 1
	}

	line := title + "  " + subtitle + strings.Repeat(" ", gap) + connection
	return m.theme.Header.Width(m.width).Render(line)
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m *Model) renderSidebar() string {
	inner := m.sidebarWidth - 4 // border and padding
	var sb strings.Builder

	sb.WriteString(m.theme.SidebarTitle.Render("Contexts"))
	sb.WriteString("\n\n")

	contexts := m.session.Contexts()
	if len(contexts) == 0 {
		if m.session.Ingesting() {
			sb.WriteString(m.theme.SidebarBusy.Render("ingesting..."))
		} else {
			sb.WriteString(m.theme.SidebarEmpty.Render("none yet"))
		}
	}

	for i, id := range contexts {
		label := util.TruncateWidth(id, inner-2)

		style := m.theme.SidebarItem
		prefix := "  "
		if id == m.session.ActiveContext() {
			style = m.theme.SidebarActive
			prefix = "* "
		}
		if m.focus == focusSidebar && i == m.cursor {
			style = m.theme.SidebarCursor
		}
		sb.WriteString(style.Render(prefix + label))
		sb.WriteString("\n")
	}

	if m.session.Ingesting() && len(contexts) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View() + m.theme.SidebarBusy.Render(" ingesting"))
	}

	return m.theme.Sidebar.
		Width(m.sidebarWidth - 2).
		Height(m.viewport.Height - 2).
		Render(sb.String())
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshTranscript re-renders the conversation into the viewport.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

func (m *Model) renderTranscript() string {
	transcript := m.session.Transcript()

	if len(transcript) == 0 {
		if !m.session.HasActiveContext() {
			return m.theme.EmptyState.Render(
				"No context selected.\n\n" +
					"Press C-g to ingest a repository or C-o to upload a file,\n" +
					"then pick a context from the sidebar (Tab).")
		}
		return m.theme.EmptyState.Render("Ask anything about " + m.session.ActiveContext() + ".")
	}

	var sb strings.Builder
	for i, msg := range transcript {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderMessage(msg))
		sb.WriteString("\n")
	}

	if m.session.Loading() {
		sb.WriteString("\n")
		sb.WriteString(m.spinner.View() + m.theme.ThinkingText.Render(" Thinking..."))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) renderMessage(msg *model.Message) string {
	timestamp := ""
	if m.showTimestamps && !msg.Timestamp.IsZero() {
		timestamp = "  " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}

	switch msg.Role {
	case model.RoleUser:
		return m.theme.UserLabel.Render(msg.Role.DisplayName()) + timestamp + "\n" +
			m.theme.UserText.Render(msg.Content)
	case model.RoleError:
		return m.theme.ErrorLabel.Render(msg.Role.DisplayName()) + timestamp + "\n" +
			m.theme.ErrorText.Render(msg.Content)
	default:
		return m.theme.AILabel.Render(msg.Role.DisplayName()) + timestamp + "\n" +
			m.md.Render(msg.Content)
	}
}

// =============================================================================
// INPUT AND STATUS BAR
// =============================================================================

func (m *Model) renderInput() string {
	return m.theme.InputContainer.
		Width(m.width - 2).
		Render(m.theme.InputPrompt.Render("> ") + m.input.View())
}

func (m *Model) renderStatusBar() string {
	var left string
	switch {
	case m.status != "":
		left = m.statusStyle().Render(m.status)
	case m.session.Loading():
		left = m.theme.StatusText.Render("Waiting for reply...")
	default:
		left = m.theme.StatusText.Render("Ready")
	}

	shortcuts := m.renderShortcuts()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(shortcuts) - 4
	if gap < 1 {
		gap = 1
	}

	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + shortcuts)
}

func (m *Model) statusStyle() lipgloss.Style {
	switch m.statusKind {
	case statusOK:
		return m.theme.StatusOK
	case statusWarn:
		return m.theme.StatusWarning
	case statusError:
		return m.theme.StatusError
	default:
		return m.theme.StatusText
	}
}

func (m *Model) renderShortcuts() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts,
			m.theme.ShortcutKey.Render(b.Help().Key)+" "+m.theme.ShortcutDesc.Render(b.Help().Desc))
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m *Model) renderOverlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderIngestForm() string {
	f := m.ingestForm

	var sb strings.Builder
	sb.WriteString(m.theme.FormTitle.Render("Ingest Repository"))
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.FormLabel.Render("Repository URL"))
	sb.WriteString("\n")
	sb.WriteString(f.url.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.FormLabel.Render("Context name"))
	sb.WriteString("\n")
	sb.WriteString(f.name.View())
	sb.WriteString("\n")
	if f.err != "" {
		sb.WriteString("\n")
		sb.WriteString(m.theme.FormError.Render(f.err))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.FormHelp.Render("Tab switch field  Enter submit  Esc cancel"))

	return m.theme.FormBox.Render(sb.String())
}

func (m *Model) renderUploadForm() string {
	f := m.uploadForm

	var sb strings.Builder
	sb.WriteString(m.theme.FormTitle.Render("Upload File"))
	sb.WriteString("\n\n")

	if f.stage == stagePickFile {
		sb.WriteString(f.picker.View())
		sb.WriteString("\n")
		if f.err != "" {
			sb.WriteString(m.theme.FormError.Render(f.err))
			sb.WriteString("\n")
		}
		sb.WriteString(m.theme.FormHelp.Render("Enter pick file  Esc cancel"))
	} else {
		sb.WriteString(m.theme.FormLabel.Render("File"))
		sb.WriteString("\n")
		sb.WriteString(util.TruncateWidth(f.path, 48))
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.FormLabel.Render("Context name"))
		sb.WriteString("\n")
		sb.WriteString(f.name.View())
		sb.WriteString("\n")
		if f.err != "" {
			sb.WriteString("\n")
			sb.WriteString(m.theme.FormError.Render(f.err))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.theme.FormHelp.Render("Enter upload  Esc cancel"))
	}

	return m.theme.FormBox.Render(sb.String())
}

func (m *Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(m.theme.FormTitle.Render("Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			sb.WriteString(fmt.Sprintf("%s  %s\n",
				m.theme.ShortcutKey.Render(util.PadRight(b.Help().Key, 10)),
				m.theme.ShortcutDesc.Render(b.Help().Desc)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.theme.FormHelp.Render("Esc or F1 to close"))
	return m.theme.FormBox.Render(sb.String())
}
