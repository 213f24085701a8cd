// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client pointed at the given test server.
func newTestClient(server *httptest.Server) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
}

// =============================================================================
// HEALTH CHECK TESTS
// =============================================================================

func TestCheckRunning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "Cortex API is running"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	if err := client.CheckRunning(context.Background()); err != nil {
		t.Errorf("CheckRunning: %v", err)
	}
}

func TestCheckRunning_BackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(server)
	err := client.CheckRunning(context.Background())
	if !IsBackendDown(err) {
		t.Errorf("err = %v, want backend-down", err)
	}
}

// =============================================================================
// CONTEXT LIST TESTS
// =============================================================================

func TestListContexts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contexts" {
			t.Errorf("path = %q, want /contexts", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["alpha", "beta", "gamma"]`))
	}))
	defer server.Close()

	client := newTestClient(server)
	ids, err := client.ListContexts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ids)
}

func TestListContexts_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server)
	ids, err := client.ListContexts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListContexts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.ListContexts(context.Background())
	if err == nil {
		t.Fatal("want error for 500 response")
	}
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alpha", req.ContextID)
		assert.Equal(t, "2+2?", req.Message)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "4"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	answer, err := client.Chat(context.Background(), "alpha", "2+2?")
	require.NoError(t, err)
	assert.Equal(t, "4", answer)
}

func TestChat_ContextNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Context not found. Please ingest first."}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.Chat(context.Background(), "ghost", "hi")
	if !IsContextNotFound(err) {
		t.Fatalf("err = %v, want context-not-found", err)
	}
	assert.Contains(t, err.Error(), "ingest")
}

func TestChat_ServerErrorEmbedsDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "engine exploded"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.Chat(context.Background(), "alpha", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine exploded")
}

func TestChat_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server)
	_, err := client.Chat(context.Background(), "alpha", "hi")
	if !IsBackendDown(err) {
		t.Errorf("err = %v, want backend-down", err)
	}
}

func TestChat_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel the request context.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(server)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Chat(ctx, "alpha", "slow question")
	if !IsTimeout(err) {
		t.Errorf("err = %v, want timeout", err)
	}
}

// =============================================================================
// INGESTION TESTS
// =============================================================================

func TestIngestRepo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ingest", r.URL.Path)

		var req IngestRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://github.com/acme/widgets", req.RepoURL)
		assert.Equal(t, "widgets", req.RepoName)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success", "context_id": "widgets"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	id, err := client.IngestRepo(context.Background(), "https://github.com/acme/widgets", "widgets")
	require.NoError(t, err)
	assert.Equal(t, "widgets", id)
}

func TestIngestRepo_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "clone failed: repository not found"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.IngestRepo(context.Background(), "https://bad.example/repo", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clone failed")
}

func TestIngestFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ingest/file", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data; boundary=")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "notes", r.FormValue("context_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.md", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "# hello", string(content))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "success"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	err := client.IngestFile(context.Background(), "notes.md", strings.NewReader("# hello"), "notes")
	require.NoError(t, err)
}

func TestIngestFile_ServerDetailPreferred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "unsupported file type"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	err := client.IngestFile(context.Background(), "x.bin", strings.NewReader("junk"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestIngestFile_GenericFailureWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server)
	err := client.IngestFile(context.Background(), "x.md", strings.NewReader("x"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

// =============================================================================
// CONFIG AND HELPERS
// =============================================================================

func TestNewClientWithConfig_FillsDefaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, "http://127.0.0.1:8000", client.BaseURL())
	assert.Equal(t, 15*time.Second, client.config.Timeout)

	client = NewClientWithConfig(nil)
	assert.Equal(t, "http://127.0.0.1:8000", client.BaseURL())
}

func TestSanitizeContextName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-repo", "my-repo"},
		{"my repo!", "myrepo"},
		{"a_b-c.d/e", "a_b-cde"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := SanitizeContextName(tc.input); got != tc.want {
			t.Errorf("SanitizeContextName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestErrorTypeString(t *testing.T) {
	if ErrTypeBackendDown.String() != "backend_down" {
		t.Errorf("String = %q", ErrTypeBackendDown.String())
	}
	if ErrTypeUnknown.String() != "unknown" {
		t.Errorf("String = %q", ErrTypeUnknown.String())
	}
}
