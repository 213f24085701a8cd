// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the session view component for the TUI.
//
// This file implements the modal forms for the two ingestion triggers.
// Forms collect their inputs without blocking the event loop; the session
// keeps receiving replies and directory refreshes while a form is open.
package chat

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// REPO INGESTION FORM
// =============================================================================

// ingestForm collects a repository URL and a context name.
type ingestForm struct {
	url   textinput.Model
	name  textinput.Model
	focus int // 0 = url, 1 = name
	err   string
}

func newIngestForm() *ingestForm {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://github.com/owner/repo"
	urlInput.CharLimit = 512
	urlInput.Width = 48
	urlInput.Focus()

	nameInput := textinput.New()
	nameInput.Placeholder = "context name"
	nameInput.CharLimit = 64
	nameInput.Width = 48

	return &ingestForm{url: urlInput, name: nameInput}
}

// Update routes key events to the focused field. Tab and shift+tab move
// between fields.
func (f *ingestForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "shift+tab", "up", "down":
			f.toggleFocus()
			return nil
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.url, cmd = f.url.Update(msg)
	} else {
		f.name, cmd = f.name.Update(msg)
	}
	return cmd
}

func (f *ingestForm) toggleFocus() {
	if f.focus == 0 {
		f.focus = 1
		f.url.Blur()
		f.name.Focus()
	} else {
		f.focus = 0
		f.name.Blur()
		f.url.Focus()
	}
}

// Submit validates the form. On success it returns the trimmed values;
// otherwise it records a field error and reports false.
func (f *ingestForm) Submit() (repoURL, repoName string, ok bool) {
	repoURL = strings.TrimSpace(f.url.Value())
	repoName = strings.TrimSpace(f.name.Value())

	switch {
	case repoURL == "":
		f.err = "repository URL is required"
	case repoName == "":
		f.err = "context name is required"
	default:
		f.err = ""
		return repoURL, repoName, true
	}
	return "", "", false
}

// =============================================================================
// FILE UPLOAD FORM
// =============================================================================

// uploadStage tracks which half of the upload form is active.
type uploadStage int

const (
	stagePickFile uploadStage = iota
	stageNameContext
)

// uploadForm collects a local file path and a target context name.
// The file is picked first, then the context named; Enter on the name
// field submits.
type uploadForm struct {
	picker filepicker.Model
	name   textinput.Model
	stage  uploadStage
	path   string
	err    string
}

func newUploadForm(activeContext string) *uploadForm {
	fp := filepicker.New()
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	fp.Height = 10

	nameInput := textinput.New()
	nameInput.Placeholder = "context name"
	nameInput.CharLimit = 64
	nameInput.Width = 48
	// Uploading into the active context is the common case.
	nameInput.SetValue(activeContext)

	return &uploadForm{picker: fp, name: nameInput}
}

// Init starts the filepicker's directory read.
func (f *uploadForm) Init() tea.Cmd {
	return f.picker.Init()
}

// Update drives the active stage. When a file is selected the form moves
// to the naming stage.
func (f *uploadForm) Update(msg tea.Msg) tea.Cmd {
	if f.stage == stageNameContext {
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	f.picker, cmd = f.picker.Update(msg)

	if didSelect, path := f.picker.DidSelectFile(msg); didSelect {
		f.path = path
		f.stage = stageNameContext
		f.name.Focus()
		return textinput.Blink
	}
	if didSelect, path := f.picker.DidSelectDisabledFile(msg); didSelect {
		f.err = "cannot upload " + path
	}
	return cmd
}

// Submit validates the form. Only valid once a file has been picked and a
// context name entered.
func (f *uploadForm) Submit() (path, contextID string, ok bool) {
	contextID = strings.TrimSpace(f.name.Value())

	switch {
	case f.path == "":
		f.err = "pick a file first"
	case contextID == "":
		f.err = "context name is required"
	default:
		f.err = ""
		return f.path, contextID, true
	}
	return "", "", false
}
