// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status command for the cortex CLI.
//
// Command: status
// Short:   Show backend connectivity and context count
// Aliases: s
package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/cortex-tui/internal/config"
	"github.com/jeranaias/cortex-tui/internal/ui/styles"
)

// HandleStatusCommand handles the "status" command.
func HandleStatusCommand(args Args) error {
	client := NewClientFromArgs(args)
	ctx := context.Background()

	fmt.Println(headerStyle.Render("Cortex Status"))
	fmt.Printf("%s %s\n", infoStyle.Render("Backend:"), client.BaseURL())

	if err := client.CheckRunning(ctx); err != nil {
		fmt.Printf("%s %s\n",
			errorStyle.Render(styles.StatusIndicators.Error),
			errorStyle.Render("unreachable"))
		if args.Verbose {
			fmt.Println(infoStyle.Render("  " + err.Error()))
		}
		return fmt.Errorf("backend unreachable")
	}
	fmt.Printf("%s %s\n",
		successStyle.Render(styles.StatusIndicators.Connected),
		successStyle.Render("running"))

	contexts, err := client.ListContexts(ctx)
	if err != nil {
		fmt.Println(warningStyle.Render("Could not list contexts: " + err.Error()))
		return nil
	}

	fmt.Printf("%s %d\n", infoStyle.Render("Contexts:"), len(contexts))
	for _, id := range contexts {
		fmt.Println("  " + id)
	}

	if def := config.Global().Backend.DefaultContext; def != "" {
		fmt.Printf("%s %s\n", infoStyle.Render("Default context:"), def)
	}
	return nil
}
