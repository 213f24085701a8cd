// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the cortex client session.
package model

import (
	"errors"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrEmptyMessage is returned when a send is attempted with no content.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoActiveContext is returned when a send is attempted before a
	// context has been selected.
	ErrNoActiveContext = errors.New("no active context selected")

	// ErrChatInFlight is returned when a send is attempted while a chat
	// round-trip is already pending for the active context.
	ErrChatInFlight = errors.New("a request is already in flight for this context")

	// ErrIngestInFlight is returned when an ingestion is started while
	// another one is still running.
	ErrIngestInFlight = errors.New("an ingestion is already in progress")
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the state container for the cortex client. All mutable UI state
// lives here, behind explicit mutation entry points, so state transitions can
// be tested directly.
//
// Session is not safe for concurrent use. In the TUI it is only ever touched
// from the Bubble Tea update loop, which serializes all events.
type Session struct {
	contexts   []string
	active     string
	transcript []*Message

	ingesting bool

	// epoch increments whenever the transcript is reset. A pending reply is
	// only appended when the transcript it belongs to is still the current
	// one; a reply for a reset transcript is dropped.
	epoch    int
	inflight map[string]int // context id -> epoch at send time
}

// NewSession creates an empty session with no contexts and no active context.
func NewSession() *Session {
	return &Session{
		inflight: make(map[string]int),
	}
}

// =============================================================================
// CONTEXT DIRECTORY
// =============================================================================

// Contexts returns the known context identifiers in server order.
func (s *Session) Contexts() []string {
	out := make([]string, len(s.contexts))
	copy(out, s.contexts)
	return out
}

// ContextCount returns the number of known contexts.
func (s *Session) ContextCount() int {
	return len(s.contexts)
}

// SetContexts replaces the context directory. Server order is preserved;
// duplicate identifiers are dropped.
func (s *Session) SetContexts(ids []string) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	s.contexts = out
}

// ActiveContext returns the currently selected context, or "" if none.
func (s *Session) ActiveContext() string {
	return s.active
}

// HasActiveContext reports whether a context is selected.
func (s *Session) HasActiveContext() bool {
	return s.active != ""
}

// SelectContext makes id the active context and resets the transcript.
// Selecting the already-active context is a no-op. Returns true when the
// selection changed.
func (s *Session) SelectContext(id string) bool {
	if id == s.active {
		return false
	}
	s.active = id
	s.resetTranscript()
	return true
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript returns the messages for the active context in append order.
func (s *Session) Transcript() []*Message {
	out := make([]*Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// TranscriptLen returns the number of transcript entries.
func (s *Session) TranscriptLen() int {
	return len(s.transcript)
}

// ClearTranscript empties the transcript for the active context.
// Pending replies for the cleared transcript will be dropped.
func (s *Session) ClearTranscript() {
	s.resetTranscript()
}

func (s *Session) resetTranscript() {
	s.transcript = nil
	s.epoch++
}

// =============================================================================
// CHAT ROUND-TRIP
// =============================================================================

// Loading reports whether a chat round-trip is pending for the active context.
func (s *Session) Loading() bool {
	_, ok := s.inflight[s.active]
	return ok
}

// BeginSend validates and starts a chat round-trip: the user message is
// appended optimistically and the active context is marked in flight.
//
// Returns ErrEmptyMessage for empty or whitespace-only input,
// ErrNoActiveContext when no context is selected, and ErrChatInFlight when a
// round-trip is already pending for the active context. In all error cases
// the transcript is left untouched and no request should be issued.
func (s *Session) BeginSend(text string) (*Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	if s.active == "" {
		return nil, ErrNoActiveContext
	}
	if _, ok := s.inflight[s.active]; ok {
		return nil, ErrChatInFlight
	}

	msg := NewUserMessage(trimmed)
	msg.ContextID = s.active
	s.transcript = append(s.transcript, msg)
	s.inflight[s.active] = s.epoch
	return msg, nil
}

// CompleteSend resolves a pending round-trip with the backend's response.
// The ai message is appended only when the context is still active and its
// transcript has not been reset since the send; otherwise the reply is
// dropped. The in-flight mark is cleared in every case.
func (s *Session) CompleteSend(contextID, response string) *Message {
	if !s.settle(contextID) {
		return nil
	}
	msg := NewAIMessage(response)
	msg.ContextID = contextID
	s.transcript = append(s.transcript, msg)
	return msg
}

// FailSend resolves a pending round-trip with a failure. The reason is
// recorded as an error entry in the transcript, subject to the same
// staleness rules as CompleteSend.
func (s *Session) FailSend(contextID, reason string) *Message {
	if !s.settle(contextID) {
		return nil
	}
	msg := NewErrorMessage(reason)
	msg.ContextID = contextID
	s.transcript = append(s.transcript, msg)
	return msg
}

// settle clears the in-flight mark for contextID and reports whether the
// corresponding reply should still be appended.
func (s *Session) settle(contextID string) bool {
	epoch, ok := s.inflight[contextID]
	if !ok {
		return false
	}
	delete(s.inflight, contextID)
	return contextID == s.active && epoch == s.epoch
}

// =============================================================================
// INGESTION
// =============================================================================

// Ingesting reports whether an ingestion request is in flight.
func (s *Session) Ingesting() bool {
	return s.ingesting
}

// BeginIngest marks an ingestion as in flight. Returns ErrIngestInFlight if
// one is already running; ingestion triggers are serialized client-side.
func (s *Session) BeginIngest() error {
	if s.ingesting {
		return ErrIngestInFlight
	}
	s.ingesting = true
	return nil
}

// EndIngest clears the ingestion flag. Called on success and failure alike.
func (s *Session) EndIngest() {
	s.ingesting = false
}
