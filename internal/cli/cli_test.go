// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args defaults to tui", nil, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"ask", []string{"ask", "hello"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"contexts", []string{"contexts"}, CmdContexts},
		{"ls alias", []string{"ls"}, CmdContexts},
		{"ingest", []string{"ingest", "https://x/y", "y"}, CmdIngest},
		{"ingest-file", []string{"ingest-file", "a.md"}, CmdIngestFile},
		{"upload alias", []string{"upload", "a.md"}, CmdIngestFile},
		{"status", []string{"status"}, CmdStatus},
		{"status alias", []string{"s"}, CmdStatus},
		{"config", []string{"config", "show"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls back to help", []string{"frobnicate"}, CmdHelp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := ParseArgs(tc.argv)
			if got != tc.want {
				t.Errorf("ParseArgs(%v) = %v, want %v", tc.argv, got, tc.want)
			}
		})
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--api-url", "http://10.0.0.5:8000", "-c", "widgets", "-q", "ask", "hi"})

	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if args.APIURL != "http://10.0.0.5:8000" {
		t.Errorf("APIURL = %q", args.APIURL)
	}
	if args.Context != "widgets" {
		t.Errorf("Context = %q", args.Context)
	}
	if !args.Quiet {
		t.Error("Quiet should be set")
	}
	if args.Query != "hi" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParseArgs_AskQueryJoined(t *testing.T) {
	_, args := ParseArgs([]string{"ask", "what", "is", "this"})
	if args.Query != "what is this" {
		t.Errorf("Query = %q, want joined words", args.Query)
	}
}

func TestParseArgs_AskKeepsDashWords(t *testing.T) {
	_, args := ParseArgs([]string{"ask", "what", "does", "--frobnicate", "mean"})
	if args.Query != "what does --frobnicate mean" {
		t.Errorf("Query = %q, dash words must stay in the question", args.Query)
	}
}

func TestParseArgs_IngestNameDerived(t *testing.T) {
	tests := []struct {
		argv     []string
		wantURL  string
		wantName string
	}{
		{[]string{"ingest", "https://github.com/acme/widgets", "custom"}, "https://github.com/acme/widgets", "custom"},
		{[]string{"ingest", "https://github.com/acme/widgets"}, "https://github.com/acme/widgets", "widgets"},
		{[]string{"ingest", "https://github.com/acme/widgets.git"}, "https://github.com/acme/widgets.git", "widgets"},
		{[]string{"ingest", "https://github.com/acme/widgets/"}, "https://github.com/acme/widgets/", "widgets"},
	}

	for _, tc := range tests {
		_, args := ParseArgs(tc.argv)
		if args.RepoURL != tc.wantURL {
			t.Errorf("ParseArgs(%v) RepoURL = %q, want %q", tc.argv, args.RepoURL, tc.wantURL)
		}
		if args.RepoName != tc.wantName {
			t.Errorf("ParseArgs(%v) RepoName = %q, want %q", tc.argv, args.RepoName, tc.wantName)
		}
	}
}

func TestParseArgs_IngestFilePositionalName(t *testing.T) {
	_, args := ParseArgs([]string{"ingest-file", "notes.md", "widgets"})
	if args.File != "notes.md" {
		t.Errorf("File = %q", args.File)
	}
	if args.Context != "widgets" {
		t.Errorf("Context = %q, want widgets", args.Context)
	}

	// --context wins over the positional name
	_, args = ParseArgs([]string{"-c", "flag-ctx", "ingest-file", "notes.md", "pos-ctx"})
	if args.Context != "flag-ctx" {
		t.Errorf("Context = %q, want flag-ctx", args.Context)
	}
}

func TestParseArgs_ConfigSubcommand(t *testing.T) {
	_, args := ParseArgs([]string{"config", "path"})
	if args.Subcommand != "path" {
		t.Errorf("Subcommand = %q, want path", args.Subcommand)
	}
}

func TestRepoNameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/acme/widgets", "widgets"},
		{"https://github.com/acme/widgets.git", "widgets"},
		{"git@host:repo", "git@host:repo"},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		if got := repoNameFromURL(tc.in); got != tc.want {
			t.Errorf("repoNameFromURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
