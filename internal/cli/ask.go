// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the cortex CLI.
//
// CLI: Comprehensive help and examples for all commands
// USABILITY: Markdown rendering for better CLI experience
//
// Handles "cortex ask", which sends one question to a context and prints
// the answer.
//
// Command: ask [question]
// Short:   Ask a single question
//
// Examples:
//   cortex ask "How does the auth module work?"
//   cortex ask --context widgets "What does this repo do?"
//   echo "Summarize the README" | cortex ask
//
// Flags:
//   -c, --context NAME  Target context (default from config)
//   -q, --quiet         Answer only, no preamble
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/cortex-tui/internal/api"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for answer output.
// USABILITY: Renders markdown answers with highlighting on TTYs.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayAnswer prints an answer, rendered when stdout is a TTY so piped
// output stays plain.
func displayAnswer(answer string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
	} else {
		fmt.Println(answer)
	}
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAskCommand handles the "ask" command.
func HandleAskCommand(args Args) error {
	question := args.Query

	// Piped input supplies the question when none was given
	if question == "" {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(bufio.NewReader(os.Stdin))
			if err == nil && len(data) > 0 {
				question = strings.TrimSpace(string(data))
			}
		}
	}
	if question == "" {
		return fmt.Errorf("no question provided. Usage: cortex ask \"your question\"")
	}

	contextID := targetContext(args)
	if contextID == "" {
		return fmt.Errorf("no context selected. Use --context NAME or set default_context in the config")
	}

	client := NewClientFromArgs(args)

	if !args.Quiet {
		fmt.Fprintf(os.Stderr, "%s %s\n\n",
			infoStyle.Render("Asking"),
			promptStyle.Render(contextID))
	}

	answer, err := client.Chat(context.Background(), contextID, question)
	if err != nil {
		if api.IsContextNotFound(err) {
			return fmt.Errorf("context %q not found. Ingest it first: cortex ingest <url> %s", contextID, contextID)
		}
		if api.IsBackendDown(err) {
			return fmt.Errorf("backend unreachable at %s. Is the Cortex API running?", client.BaseURL())
		}
		return err
	}

	displayAnswer(answer)
	return nil
}
