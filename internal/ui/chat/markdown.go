// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer wraps a glamour renderer pinned to a wrap width.
// Backend answers arrive as markdown; rendering failures fall back to the
// raw text so a malformed answer is still readable.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// newMarkdownRenderer creates a renderer for the given wrap width.
// Returns a pass-through renderer if glamour initialization fails.
func newMarkdownRenderer(width int) *markdownRenderer {
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &markdownRenderer{width: width}
	}
	return &markdownRenderer{renderer: r, width: width}
}

// Render converts markdown to styled terminal output.
func (m *markdownRenderer) Render(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	// Glamour pads with blank lines top and bottom; the transcript
	// supplies its own spacing.
	return strings.Trim(out, "\n")
}

// Width reports the wrap width the renderer was built for.
func (m *markdownRenderer) Width() int {
	return m.width
}
