// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ingest.go - Ingestion command handlers for the cortex CLI.
//
// Command: ingest <url> [name]
// Short:   Ingest a remote repository into a context
//
// Command: ingest-file <path>
// Short:   Upload a local file into a context
//
// Examples:
//   cortex ingest https://github.com/acme/widgets widgets
//   cortex ingest https://github.com/acme/widgets        (name derived: widgets)
//   cortex ingest-file notes.md --context widgets
//
// Ingestion runs synchronously in the backend; cloning and embedding a
// large repository can take minutes.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/cortex-tui/internal/api"
)

// HandleIngestCommand handles the "ingest" command.
func HandleIngestCommand(args Args) error {
	if args.RepoURL == "" {
		return fmt.Errorf("no repository URL. Usage: cortex ingest <url> [name]")
	}
	if args.RepoName == "" {
		return fmt.Errorf("could not derive a context name from %q; pass one explicitly", args.RepoURL)
	}

	client := NewClientFromArgs(args)

	if !args.Quiet {
		fmt.Fprintf(os.Stderr, "%s %s as %s (this can take a while)\n",
			infoStyle.Render("Ingesting"),
			args.RepoURL,
			promptStyle.Render(api.SanitizeContextName(args.RepoName)))
	}

	contextID, err := client.IngestRepo(context.Background(), args.RepoURL, args.RepoName)
	if err != nil {
		if api.IsBackendDown(err) {
			return fmt.Errorf("backend unreachable at %s. Is the Cortex API running?", client.BaseURL())
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("%s %s\n", successStyle.Render("Ingested"), contextID)
	if !args.Quiet {
		fmt.Println(infoStyle.Render("Ask it something: cortex ask --context " + contextID + " \"What does this repo do?\""))
	}
	return nil
}

// HandleIngestFileCommand handles the "ingest-file" command.
func HandleIngestFileCommand(args Args) error {
	if args.File == "" {
		return fmt.Errorf("no file given. Usage: cortex ingest-file <path> --context NAME")
	}

	contextID := targetContext(args)
	if contextID == "" {
		return fmt.Errorf("no target context. Use --context NAME or set default_context in the config")
	}

	if _, err := os.Stat(args.File); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", args.File)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	client := NewClientFromArgs(args)

	if !args.Quiet {
		fmt.Fprintf(os.Stderr, "%s %s into %s\n",
			infoStyle.Render("Uploading"),
			args.File,
			promptStyle.Render(contextID))
	}

	if err := client.IngestFilePath(context.Background(), args.File, contextID); err != nil {
		if api.IsBackendDown(err) {
			return fmt.Errorf("backend unreachable at %s. Is the Cortex API running?", client.BaseURL())
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Printf("%s %s into %s\n", successStyle.Render("Uploaded"), args.File, contextID)
	return nil
}
