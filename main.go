// cortex TUI - A terminal client for the Cortex ingestion backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cortex-tui/internal/api"
	"github.com/jeranaias/cortex-tui/internal/cli"
	"github.com/jeranaias/cortex-tui/internal/config"
	"github.com/jeranaias/cortex-tui/internal/ui/chat"
	"github.com/jeranaias/cortex-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		exitOnError(cli.HandleAskCommand(args))
	case cli.CmdChat:
		exitOnError(cli.HandleChatCommand(args))
	case cli.CmdContexts:
		exitOnError(cli.HandleContextsCommand(args))
	case cli.CmdIngest:
		exitOnError(cli.HandleIngestCommand(args))
	case cli.CmdIngestFile:
		exitOnError(cli.HandleIngestFileCommand(args))
	case cli.CmdStatus:
		exitOnError(cli.HandleStatusCommand(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfigCommand(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the full-screen session UI.
func runTUI(args cli.Args) {
	cfg := config.Global()

	baseURL := cfg.Backend.URL
	if args.APIURL != "" {
		baseURL = args.APIURL
	}
	if args.Context != "" {
		cfg.Backend.DefaultContext = args.Context
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: baseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	})

	theme := styles.NewTheme()
	model := chat.New(theme, client, cfg)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
