// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// contexts.go - Context directory listing for the cortex CLI.
//
// Command: contexts
// Short:   List ingested contexts
// Aliases: ls, list
package cli

import (
	"context"
	"fmt"
)

// HandleContextsCommand handles the "contexts" command.
func HandleContextsCommand(args Args) error {
	client := NewClientFromArgs(args)

	contexts, err := client.ListContexts(context.Background())
	if err != nil {
		return fmt.Errorf("could not list contexts: %w", err)
	}

	if len(contexts) == 0 {
		if !args.Quiet {
			fmt.Println(infoStyle.Render("No contexts ingested yet. Run: cortex ingest <url> <name>"))
		}
		return nil
	}

	if !args.Quiet {
		fmt.Println(headerStyle.Render(fmt.Sprintf("Contexts (%d)", len(contexts))))
	}
	for _, id := range contexts {
		fmt.Println("  " + id)
	}
	return nil
}
