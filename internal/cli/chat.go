// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the cortex CLI.
//
// CLI: Comprehensive help and examples for all commands
// USABILITY: Markdown rendering and history for better CLI experience
//
// Handles "cortex chat", a line-oriented REPL for people who want the
// conversation without the full-screen TUI.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /contexts           List ingested contexts
//   /use <name>         Switch the active context
//   /clear, /c          Clear the screen
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/cortex-tui/internal/api"
	"github.com/jeranaias/cortex-tui/internal/config"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// chatREPL provides input history and line editing for interactive chat.
// USABILITY: Supports arrow keys for history navigation and line editing.
type chatREPL struct {
	line        *liner.State
	historyFile string
}

func newChatREPL() *chatREPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.Dir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	return &chatREPL{line: line, historyFile: historyFile}
}

// Close saves history and closes the liner.
func (r *chatREPL) Close() {
	if f, err := os.Create(r.historyFile); err == nil {
		r.line.WriteHistory(f)
		f.Close()
	}
	r.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand handles the "chat" command.
func HandleChatCommand(args Args) error {
	if !IsTTY() {
		return fmt.Errorf("chat requires an interactive terminal; use 'cortex ask' for piped input")
	}

	client := NewClientFromArgs(args)
	ctx := context.Background()

	if err := client.CheckRunning(ctx); err != nil {
		return fmt.Errorf("backend unreachable at %s. Is the Cortex API running?", client.BaseURL())
	}

	contexts, err := client.ListContexts(ctx)
	if err != nil {
		return fmt.Errorf("could not list contexts: %w", err)
	}

	active := targetContext(args)
	if active == "" && len(contexts) > 0 {
		active = contexts[0]
	}

	if !args.Quiet {
		fmt.Println(headerStyle.Render("Cortex Chat"))
		if active != "" {
			fmt.Printf("%s %s\n", infoStyle.Render("Active context:"), promptStyle.Render(active))
		} else {
			fmt.Println(warningStyle.Render("No contexts ingested yet. Run: cortex ingest <url> <name>"))
		}
		fmt.Println(infoStyle.Render("Type /help for commands, /quit to exit."))
		fmt.Println()
	}

	repl := newChatREPL()
	defer repl.Close()

	for {
		input, err := repl.line.Prompt(promptDisplay(active))
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		repl.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			done, newActive := handleSlashCommand(ctx, client, input, active)
			active = newActive
			if done {
				return nil
			}
			continue
		}

		if active == "" {
			fmt.Println(warningStyle.Render("No active context. Switch with: /use <name>"))
			continue
		}

		answer, err := client.Chat(ctx, active, input)
		if err != nil {
			if api.IsContextNotFound(err) {
				fmt.Println(errorStyle.Render("Context not found. It may have been removed; try /contexts."))
			} else {
				fmt.Println(errorStyle.Render("Error: " + err.Error()))
			}
			continue
		}

		fmt.Println()
		displayAnswer(answer)
		fmt.Println()
	}
}

func promptDisplay(active string) string {
	if active == "" {
		return "(no context) > "
	}
	return active + " > "
}

// handleSlashCommand executes a REPL command. Returns whether the REPL
// should exit and the possibly changed active context.
func handleSlashCommand(ctx context.Context, client *api.Client, input, active string) (exit bool, newActive string) {
	fields := strings.Fields(input)
	cmd := fields[0]

	switch cmd {
	case "/quit", "/q", "/exit":
		return true, active

	case "/help", "/h":
		fmt.Println(infoStyle.Render(`  /contexts        List ingested contexts
  /use <name>      Switch the active context
  /clear, /c       Clear the screen
  /quit, /q        Exit chat`))
		return false, active

	case "/contexts":
		contexts, err := client.ListContexts(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			return false, active
		}
		if len(contexts) == 0 {
			fmt.Println(warningStyle.Render("No contexts ingested yet."))
			return false, active
		}
		for _, id := range contexts {
			marker := "  "
			if id == active {
				marker = successStyle.Render("* ")
			}
			fmt.Println(marker + id)
		}
		return false, active

	case "/use":
		if len(fields) < 2 {
			fmt.Println(warningStyle.Render("Usage: /use <name>"))
			return false, active
		}
		fmt.Printf("%s %s\n", infoStyle.Render("Switched to"), promptStyle.Render(fields[1]))
		return false, fields[1]

	case "/clear", "/c":
		fmt.Print("\033[2J\033[H")
		return false, active

	default:
		fmt.Println(warningStyle.Render("Unknown command: " + cmd + " (try /help)"))
		return false, active
	}
}
