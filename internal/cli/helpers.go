// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared styles and client construction for CLI commands.
package cli

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cortex-tui/internal/api"
	"github.com/jeranaias/cortex-tui/internal/config"
	"github.com/jeranaias/cortex-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// Prompt style
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// Info style
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// Success style
	successStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// Warning style
	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)

	// Header / banner style
	headerStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)
)

// =============================================================================
// CLIENT CONSTRUCTION
// =============================================================================

// NewClientFromArgs builds an API client honoring the --api-url override
// on top of the loaded configuration.
func NewClientFromArgs(args Args) *api.Client {
	cfg := config.Global()

	baseURL := cfg.Backend.URL
	if args.APIURL != "" {
		baseURL = args.APIURL
	}

	return api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: baseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	})
}

// targetContext resolves the context a command operates on: the --context
// flag wins, then the configured default.
func targetContext(args Args) string {
	if args.Context != "" {
		return args.Context
	}
	return config.Global().Backend.DefaultContext
}
