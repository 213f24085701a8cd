// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"
)

// =============================================================================
// CONTEXT DIRECTORY TESTS
// =============================================================================

func TestSetContexts_PreservesServerOrder(t *testing.T) {
	s := NewSession()
	s.SetContexts([]string{"zeta", "alpha", "mid"})

	got := s.Contexts()
	want := []string{"zeta", "alpha", "mid"}
	if len(got) != len(want) {
		t.Fatalf("Contexts length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Contexts[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSetContexts_DropsDuplicates(t *testing.T) {
	s := NewSession()
	s.SetContexts([]string{"a", "b", "a", "c", "b"})

	if s.ContextCount() != 3 {
		t.Errorf("ContextCount = %d, want 3", s.ContextCount())
	}
}

func TestSelectContext_ResetsTranscript(t *testing.T) {
	s := NewSession()
	s.SetContexts([]string{"alpha", "beta"})
	s.SelectContext("alpha")

	if _, err := s.BeginSend("hello"); err != nil {
		t.Fatalf("BeginSend: %v", err)
	}
	if s.TranscriptLen() != 1 {
		t.Fatalf("TranscriptLen = %d, want 1", s.TranscriptLen())
	}

	// Every selection change leaves the transcript empty.
	for _, id := range []string{"beta", "alpha", "beta"} {
		if !s.SelectContext(id) {
			t.Fatalf("SelectContext(%q) reported no change", id)
		}
		if s.TranscriptLen() != 0 {
			t.Errorf("after SelectContext(%q): TranscriptLen = %d, want 0", id, s.TranscriptLen())
		}
	}
}

func TestSelectContext_IdempotentKeepsTranscript(t *testing.T) {
	s := NewSession()
	s.SelectContext("alpha")
	s.BeginSend("hi")
	s.CompleteSend("alpha", "hello")

	if s.SelectContext("alpha") {
		t.Error("reselecting the active context should be a no-op")
	}
	if s.TranscriptLen() != 2 {
		t.Errorf("TranscriptLen = %d, want 2 (transcript must survive reselection)", s.TranscriptLen())
	}
}

// =============================================================================
// SEND PRECONDITION TESTS
// =============================================================================

func TestBeginSend_EmptyInput(t *testing.T) {
	s := NewSession()
	s.SelectContext("alpha")

	for _, input := range []string{"", "   ", "\n\t "} {
		if _, err := s.BeginSend(input); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("BeginSend(%q) err = %v, want ErrEmptyMessage", input, err)
		}
	}
	if s.TranscriptLen() != 0 {
		t.Errorf("TranscriptLen = %d, want 0", s.TranscriptLen())
	}
}

func TestBeginSend_NoActiveContext(t *testing.T) {
	s := NewSession()

	_, err := s.BeginSend("hi")
	if !errors.Is(err, ErrNoActiveContext) {
		t.Errorf("err = %v, want ErrNoActiveContext", err)
	}
	if s.TranscriptLen() != 0 {
		t.Errorf("transcript must stay empty, got %d entries", s.TranscriptLen())
	}
	if s.Loading() {
		t.Error("Loading must stay false")
	}
}

func TestBeginSend_RejectsOverlappingRequests(t *testing.T) {
	s := NewSession()
	s.SelectContext("alpha")

	if _, err := s.BeginSend("first"); err != nil {
		t.Fatalf("first BeginSend: %v", err)
	}
	if _, err := s.BeginSend("second"); !errors.Is(err, ErrChatInFlight) {
		t.Errorf("second BeginSend err = %v, want ErrChatInFlight", err)
	}
	if s.TranscriptLen() != 1 {
		t.Errorf("TranscriptLen = %d, want 1 (rejected send must not append)", s.TranscriptLen())
	}

	// After resolution a new send is allowed again.
	s.CompleteSend("alpha", "done")
	if _, err := s.BeginSend("third"); err != nil {
		t.Errorf("BeginSend after completion: %v", err)
	}
}

func TestBeginSend_TrimsContent(t *testing.T) {
	s := NewSession()
	s.SelectContext("alpha")

	msg, err := s.BeginSend("  hello  ")
	if err != nil {
		t.Fatalf("BeginSend: %v", err)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "hello")
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want user", msg.Role)
	}
}

// =============================================================================
// ROUND-TRIP RESOLUTION TESTS
// =============================================================================

func TestSendSuccess_AppendOrder(t *testing.T) {
	s := NewSession()
	s.SetContexts([]string{"alpha"})
	s.SelectContext("alpha")

	if _, err := s.BeginSend("2+2?"); err != nil {
		t.Fatalf("BeginSend: %v", err)
	}
	if !s.Loading() {
		t.Error("Loading must be true while in flight")
	}

	s.CompleteSend("alpha", "4")

	tr := s.Transcript()
	if len(tr) != 2 {
		t.Fatalf("TranscriptLen = %d, want 2", len(tr))
	}
	if tr[0].Role != RoleUser || tr[0].Content != "2+2?" {
		t.Errorf("entry 0 = {%s, %q}, want {user, 2+2?}", tr[0].Role, tr[0].Content)
	}
	if tr[1].Role != RoleAI || tr[1].Content != "4" {
		t.Errorf("entry 1 = {%s, %q}, want {ai, 4}", tr[1].Role, tr[1].Content)
	}
	if s.Loading() {
		t.Error("Loading must be false after completion")
	}
}

func TestSendFailure_AppendsErrorAndClearsLoading(t *testing.T) {
	s := NewSession()
	s.SelectContext("alpha")
	s.BeginSend("hello")

	s.FailSend("alpha", "chat request failed: 500 Internal Server Error")

	tr := s.Transcript()
	if len(tr) != 2 {
		t.Fatalf("TranscriptLen = %d, want 2", len(tr))
	}
	if tr[1].Role != RoleError {
		t.Errorf("entry 1 role = %q, want error", tr[1].Role)
	}
	if tr[1].Content == "" {
		t.Error("error entry must embed the failure reason")
	}
	if s.Loading() {
		t.Error("Loading must be false after failure")
	}
}

func TestStaleReply_DroppedAfterContextSwitch(t *testing.T) {
	s := NewSession()
	s.SetContexts([]string{"alpha", "beta"})
	s.SelectContext("alpha")
	s.BeginSend("slow question")

	// The user switches away before the reply lands.
	s.SelectContext("beta")

	if msg := s.CompleteSend("alpha", "late answer"); msg != nil {
		t.Error("reply for a deselected context must be dropped")
	}
	if s.TranscriptLen() != 0 {
		t.Errorf("TranscriptLen = %d, want 0", s.TranscriptLen())
	}

	// The in-flight mark for alpha is settled, so a fresh exchange works.
	s.SelectContext("alpha")
	if _, err := s.BeginSend("again"); err != nil {
		t.Errorf("BeginSend after stale settle: %v", err)
	}
}

func TestStaleReply_DroppedAfterRoundTrip(t *testing.T) {
	// Switching away and back resets the transcript; the old reply would
	// otherwise appear without its user message.
	s := NewSession()
	s.SelectContext("alpha")
	s.BeginSend("question")
	s.SelectContext("beta")
	s.SelectContext("alpha")

	if msg := s.CompleteSend("alpha", "orphaned answer"); msg != nil {
		t.Error("reply for a reset transcript must be dropped")
	}
	if s.TranscriptLen() != 0 {
		t.Errorf("TranscriptLen = %d, want 0", s.TranscriptLen())
	}
}

func TestCompleteSend_UnknownContextIgnored(t *testing.T) {
	s := NewSession()
	s.SelectContext("alpha")

	if msg := s.CompleteSend("alpha", "never asked"); msg != nil {
		t.Error("reply with no pending send must be dropped")
	}
}

// =============================================================================
// INGESTION FLAG TESTS
// =============================================================================

func TestIngestFlag_Lifecycle(t *testing.T) {
	s := NewSession()

	if err := s.BeginIngest(); err != nil {
		t.Fatalf("BeginIngest: %v", err)
	}
	if !s.Ingesting() {
		t.Error("Ingesting must be true while in flight")
	}
	if err := s.BeginIngest(); !errors.Is(err, ErrIngestInFlight) {
		t.Errorf("second BeginIngest err = %v, want ErrIngestInFlight", err)
	}

	s.EndIngest()
	if s.Ingesting() {
		t.Error("Ingesting must be false after EndIngest")
	}
	if err := s.BeginIngest(); err != nil {
		t.Errorf("BeginIngest after EndIngest: %v", err)
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessages(t *testing.T) {
	user := NewUserMessage("hi")
	if user.Role != RoleUser || user.Content != "hi" {
		t.Errorf("user message = {%s, %q}", user.Role, user.Content)
	}
	if user.ID == "" {
		t.Error("message must get a generated ID")
	}

	ai := NewAIMessage("hello")
	if ai.Role != RoleAI {
		t.Errorf("Role = %q, want ai", ai.Role)
	}

	errMsg := NewErrorMessage("boom")
	if errMsg.Role != RoleError {
		t.Errorf("Role = %q, want error", errMsg.Role)
	}

	if user.ID == ai.ID {
		t.Error("IDs must be unique")
	}
}

func TestMessagePreview(t *testing.T) {
	m := NewUserMessage("a long message that should be truncated")
	if got := m.Preview(10); got != "a long ..." {
		t.Errorf("Preview = %q", got)
	}
	short := NewUserMessage("hi")
	if got := short.Preview(10); got != "hi" {
		t.Errorf("Preview = %q", got)
	}
	if got := m.Preview(2); got != "a " {
		t.Errorf("Preview(2) = %q", got)
	}
	// Zero and negative widths yield nothing rather than panicking.
	if got := m.Preview(0); got != "" {
		t.Errorf("Preview(0) = %q, want empty", got)
	}
	if got := m.Preview(-1); got != "" {
		t.Errorf("Preview(-1) = %q, want empty", got)
	}
}

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAI, "Cortex"},
		{RoleError, "Error"},
		{Role("other"), "other"},
	}
	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}
