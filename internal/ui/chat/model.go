// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the session view component for the TUI.
//
// This file defines the Model struct and its constructor. The Model is the
// single state container for the session UI: widget state, layout, focus,
// overlays, and the conversation Session all live here.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cortex-tui/internal/api"
	"github.com/jeranaias/cortex-tui/internal/config"
	"github.com/jeranaias/cortex-tui/internal/model"
	"github.com/jeranaias/cortex-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS AND OVERLAY STATES
// =============================================================================

// focusArea identifies which pane receives key events.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// overlayKind identifies the modal overlay currently shown, if any.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayIngest
	overlayUpload
	overlayHelp
)

// statusKind colors the status line.
type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

// =============================================================================
// MODEL DEFINITION
// =============================================================================

// Model is the Bubble Tea model for the session UI.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	keys   KeyMap

	// Conversation state. All ordering and re-entrancy rules live here.
	session *model.Session

	// Widgets
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Focus and overlays
	focus      focusArea
	overlay    overlayKind
	ingestForm *ingestForm
	uploadForm *uploadForm

	// Sidebar cursor, independent of the active context.
	cursor int

	// Layout
	width          int
	height         int
	sidebarWidth   int
	showTimestamps bool
	ready          bool

	// Backend connectivity
	backendUp      bool
	backendChecked bool

	// Context auto-selected on the first directory load, when present.
	defaultContext string

	// Transient status line
	status     string
	statusKind statusKind
	statusGen  int

	// Markdown rendering for AI answers
	md *markdownRenderer
}

// New creates the session UI model.
func New(theme *styles.Theme, client *api.Client, cfg *config.Config) *Model {
	input := textinput.New()
	input.Placeholder = "Ask about the active context..."
	input.CharLimit = 4096
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	sidebarWidth := cfg.UI.SidebarWidth
	if sidebarWidth <= 0 {
		sidebarWidth = 28
	}

	return &Model{
		theme:          theme,
		client:         client,
		keys:           DefaultKeyMap(),
		session:        model.NewSession(),
		input:          input,
		spinner:        sp,
		sidebarWidth:   sidebarWidth,
		showTimestamps: cfg.UI.ShowTimestamps,
		defaultContext: cfg.Backend.DefaultContext,
		md:             newMarkdownRenderer(cfg.UI.WordWrap),
	}
}

// Init kicks off the backend health check and the first directory load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		CheckBackendCmd(m.client),
		LoadContextsCmd(m.client),
	)
}

// Session exposes the conversation state, mainly for tests.
func (m *Model) Session() *model.Session {
	return m.session
}

// setStatus replaces the status line and schedules its expiry.
func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.status = text
	m.statusKind = kind
	m.statusGen++
	return expireStatusCmd(m.statusGen)
}
