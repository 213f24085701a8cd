// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the cortex TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// SIDEBAR (CONTEXT DIRECTORY) STYLES
	// ==========================================================================

	Sidebar         lipgloss.Style
	SidebarTitle    lipgloss.Style
	SidebarItem     lipgloss.Style
	SidebarCursor   lipgloss.Style
	SidebarActive   lipgloss.Style
	SidebarEmpty    lipgloss.Style
	SidebarBusy     lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	UserLabel  lipgloss.Style
	AILabel    lipgloss.Style
	ErrorLabel lipgloss.Style
	UserText   lipgloss.Style
	ErrorText  lipgloss.Style
	Timestamp  lipgloss.Style
	EmptyState lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusText    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusOK      lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// FORM OVERLAY STYLES
	// ==========================================================================

	FormBox   lipgloss.Style
	FormTitle lipgloss.Style
	FormLabel lipgloss.Style
	FormHelp  lipgloss.Style
	FormError lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SidebarCursor = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay)

	t.SidebarActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.SidebarEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SidebarBusy = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Transcript
	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.AILabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.ErrorLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.UserText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatusError = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.StatusWarning = lipgloss.NewStyle().
		Foreground(Amber)

	t.StatusOK = lipgloss.NewStyle().
		Foreground(Emerald)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner / loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Form overlays
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormHelp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)
}
