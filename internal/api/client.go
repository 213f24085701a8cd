// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the Cortex backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Cortex API client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeBackendDown
	ErrTypeTimeout
	ErrTypeContextNotFound
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeServer
)

// Sentinel errors for easy checking.
var (
	ErrBackendDown     = &ClientError{Type: ErrTypeBackendDown, Message: "Cortex backend is not reachable"}
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrContextNotFound = &ClientError{Type: ErrTypeContextNotFound, Message: "context not found"}
)

// IsBackendDown checks if an error indicates the backend is unreachable.
func IsBackendDown(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeBackendDown
	}
	return errors.Is(err, ErrBackendDown)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsContextNotFound checks if an error means the backend does not know the
// requested context.
func IsContextNotFound(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeContextNotFound
	}
	return errors.Is(err, ErrContextNotFound)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Cortex API client.
type ClientConfig struct {
	// BaseURL is the Cortex API base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout bounds the short requests: health check and context listing
	// (default: 15s). Chat and ingestion run unbounded; the backend does
	// real work inside those requests and callers cancel via context.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 15 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Cortex API.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := api.NewClient()
//	if err := client.CheckRunning(ctx); err != nil {
//	    log.Fatal("backend not available:", err)
//	}
//	answer, err := client.Chat(ctx, "my-repo", "how does ingestion work?")
type Client struct {
	config *ClientConfig

	// shortClient bounds health and listing calls.
	shortClient *http.Client
	// longClient has no timeout; chat and ingestion are awaited to
	// completion or context cancellation.
	longClient *http.Client
}

// NewClient creates a new Cortex API client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Cortex API client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	return &Client{
		config:      config,
		shortClient: &http.Client{Timeout: config.Timeout},
		longClient:  &http.Client{},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that the Cortex backend is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.shortClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrBackendDown
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	return nil
}

// =============================================================================
// CONTEXT DIRECTORY
// =============================================================================

// ListContexts retrieves the identifiers of all ingested contexts.
// Order is as returned by the backend.
func (c *Client) ListContexts(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/contexts", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.shortClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrBackendDown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("failed to list contexts", resp)
	}

	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode context list", Cause: err}
	}

	return ids, nil
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends a message against the given context and returns the backend's
// response text. The call blocks until the backend answers or ctx is
// cancelled; inference time is not bounded client-side.
func (c *Client) Chat(ctx context.Context, contextID, message string) (string, error) {
	body, err := json.Marshal(ChatRequest{ContextID: contextID, Message: message})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.longClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", ErrTimeout
		}
		return "", ErrBackendDown
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &ClientError{
			Type:    ErrTypeContextNotFound,
			Message: "context " + contextID + " not found: " + readDetail(resp.Body, "ingest it first"),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError("chat request failed", resp)
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Response, nil
}

// =============================================================================
// INGESTION
// =============================================================================

// IngestRepo asks the backend to clone and ingest a git repository under the
// given context name. The backend processes the repository inside the
// request, so this blocks until ingestion finishes or ctx is cancelled.
// Returns the context identifier the backend created (the sanitized name).
func (c *Client) IngestRepo(ctx context.Context, repoURL, name string) (string, error) {
	body, err := json.Marshal(IngestRequest{RepoURL: repoURL, RepoName: name})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/ingest", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.longClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", ErrTimeout
		}
		return "", ErrBackendDown
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.statusError("ingestion failed", resp)
	}

	var result IngestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// A 2xx with an unexpected body still means the backend accepted
		// the job; fall back to the sanitized name.
		return SanitizeContextName(name), nil
	}
	if result.ContextID == "" {
		return SanitizeContextName(name), nil
	}
	return result.ContextID, nil
}

// IngestFile uploads a file for ingestion under the given context name.
// The payload is multipart form data with a "file" part and a "context_id"
// field; the multipart boundary is auto-assigned by the writer.
func (c *Client) IngestFile(ctx context.Context, filename string, content io.Reader, contextID string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to build upload", Cause: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to read file", Cause: err}
	}
	if err := w.WriteField("context_id", contextID); err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to build upload", Cause: err}
	}
	if err := w.Close(); err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to build upload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/ingest/file", &buf)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.longClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return ErrBackendDown
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError("file upload failed", resp)
	}

	return nil
}

// IngestFilePath uploads a local file by path. Convenience wrapper around
// IngestFile for the CLI and the upload form.
func (c *Client) IngestFilePath(ctx context.Context, path, contextID string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to open " + path, Cause: err}
	}
	defer f.Close()

	return c.IngestFile(ctx, filepath.Base(path), f, contextID)
}

// =============================================================================
// HELPERS
// =============================================================================

// statusError builds a ClientError for a non-2xx response, preferring the
// backend's {detail} message when one is present.
func (c *Client) statusError(prefix string, resp *http.Response) *ClientError {
	errType := ErrTypeServer
	if resp.StatusCode < 500 {
		errType = ErrTypeInvalidResponse
	}
	if detail := readDetail(resp.Body, ""); detail != "" {
		return &ClientError{Type: errType, Message: prefix + ": " + detail}
	}
	return &ClientError{Type: errType, Message: prefix + ": " + resp.Status}
}

// readDetail decodes a FastAPI {detail} error body, returning fallback when
// the body has no usable detail.
func readDetail(r io.Reader, fallback string) string {
	var detail ErrorDetail
	if err := json.NewDecoder(r).Decode(&detail); err == nil && detail.Detail != "" {
		return detail.Detail
	}
	return fallback
}

// drainAndClose discards any remaining body so the connection can be reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}

// String returns a short name for the error type, for diagnostics.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeBackendDown:
		return "backend_down"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeContextNotFound:
		return "context_not_found"
	case ErrTypeConnection:
		return "connection"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeServer:
		return "server"
	default:
		return "unknown"
	}
}
