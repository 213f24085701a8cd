// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for cortex.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdContexts
	CmdIngest
	CmdIngestFile
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	APIURL  string // Override backend URL
	Context string // Override the target context

	// Command-specific
	Query      string
	File       string
	RepoURL    string
	RepoName   string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `cortex - terminal client for the Cortex ingestion backend

Cortex ingests code repositories and documents into named contexts and
answers questions about them. This client talks to a locally running
Cortex API.

Usage:
  cortex                          Start the TUI (default)
  cortex ask "question"           Ask the active context a single question
  cortex chat                     Interactive chat REPL
  cortex contexts, ls             List ingested contexts
  cortex ingest <url> <name>      Ingest a remote repository
  cortex ingest-file <path> [name] Upload a file into a context
  cortex status, s                Show backend status
  cortex config [show|path]       Configuration
  cortex version                  Show version
  cortex help                     Show this help

Ask Command:
  cortex ask "How does auth work?"          Ask the default context
  cortex ask --context api "What is X?"     Ask a specific context
  echo "question" | cortex ask              Read the question from stdin

Chat Commands (inside the REPL):
  /contexts           List contexts
  /use <name>         Switch the active context
  /clear              Clear the screen
  /quit, /q           Exit chat
  Ctrl+D              Exit chat

Ingestion:
  cortex ingest https://github.com/acme/widgets widgets
  cortex ingest-file notes.md --context widgets

Global Flags:
  --api-url URL       Backend URL (default from config or CORTEX_API_URL)
  --context NAME      Target context (default from config)
  -q, --quiet         Minimal output
  -v, --verbose       Debug output

Examples:
  cortex                                    Start the TUI
  cortex ingest https://github.com/a/b b    Ingest a repository
  cortex ask --context b "Summarize this"   Ask about it
  cortex ingest-file README.md --context b  Add a document to it

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("cortex version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out from Parse for tests.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	// No command defaults to the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask":
		parseAskArgs(&parsed, remaining)
		return CmdAsk, parsed

	case "chat":
		return CmdChat, parsed

	case "contexts", "ls", "list":
		return CmdContexts, parsed

	case "ingest":
		parseIngestArgs(&parsed, remaining)
		return CmdIngest, parsed

	case "ingest-file", "upload":
		parseIngestFileArgs(&parsed, remaining)
		return CmdIngestFile, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "config":
		if len(remaining) > 0 {
			parsed.Subcommand = strings.ToLower(remaining[0])
		}
		return CmdConfig, parsed

	case "version", "--version":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags extracts flags valid for every command. Returns the
// remaining positional arguments.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--api-url":
			if i+1 < len(argv) {
				i++
				args.APIURL = argv[i]
			}
		case "--context", "-c":
			if i+1 < len(argv) {
				i++
				args.Context = argv[i]
			}
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}

// parseAskArgs collects the question from the remaining arguments. Known
// global flags were consumed already; anything left, dash-prefixed or not,
// is a word of the question ("cortex ask what does -x mean").
func parseAskArgs(args *Args, remaining []string) {
	args.Query = strings.Join(remaining, " ")
}

// parseIngestArgs expects "<url> <name>"; the name falls back to the last
// path segment of the URL.
func parseIngestArgs(args *Args, remaining []string) {
	var positional []string
	for _, arg := range remaining {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		positional = append(positional, arg)
	}

	if len(positional) > 0 {
		args.RepoURL = positional[0]
	}
	if len(positional) > 1 {
		args.RepoName = positional[1]
	} else if args.RepoURL != "" {
		args.RepoName = repoNameFromURL(args.RepoURL)
	}
}

// parseIngestFileArgs expects "<path> [name]"; without a positional name
// the target context comes from --context or the config default.
func parseIngestFileArgs(args *Args, remaining []string) {
	var positional []string
	for _, arg := range remaining {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		positional = append(positional, arg)
	}

	if len(positional) > 0 {
		args.File = positional[0]
	}
	if len(positional) > 1 && args.Context == "" {
		args.Context = positional[1]
	}
}

// repoNameFromURL derives a context name from the repo URL's last segment.
func repoNameFromURL(repoURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(repoURL, "/"), ".git")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
