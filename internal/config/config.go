// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for cortex.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.cortex/config.toml, falling back to built-in
// defaults when absent.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete cortex configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend configuration (the Cortex API)
	Backend BackendConfig `toml:"backend"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains the Cortex API connection settings.
type BackendConfig struct {
	// URL is the base URL of the Cortex API server
	URL string `toml:"url"`
	// TimeoutSecs is the timeout for short requests (health, context list).
	// Chat and ingestion are not bounded client-side because the backend
	// does its work synchronously inside those requests.
	TimeoutSecs int `toml:"timeout_secs"`
	// DefaultContext is the context used by `cortex ask` and `cortex chat`
	// when no --context flag is given. Empty means none.
	DefaultContext string `toml:"default_context"`
}

// UIConfig contains TUI display settings.
type UIConfig struct {
	// SidebarWidth is the width of the context sidebar in columns
	SidebarWidth int `toml:"sidebar_width"`
	// WordWrap is the markdown word-wrap column for rendered replies
	WordWrap int `toml:"word_wrap"`
	// ShowTimestamps toggles per-message timestamps in the transcript
	ShowTimestamps bool `toml:"show_timestamps"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultBackendURL is the Cortex API address used when nothing is configured.
// Uses an explicit IPv4 address instead of localhost to avoid IPv6 resolution
// issues on Windows.
const DefaultBackendURL = "http://127.0.0.1:8000"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Backend: BackendConfig{
			URL:         DefaultBackendURL,
			TimeoutSecs: 15,
		},
		UI: UIConfig{
			SidebarWidth: 28,
			WordWrap:     80,
		},
	}
}

// fillDefaults replaces zero values with defaults after a partial file load.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Backend.URL == "" {
		c.Backend.URL = def.Backend.URL
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = def.Backend.TimeoutSecs
	}
	if c.UI.SidebarWidth <= 0 {
		c.UI.SidebarWidth = def.UI.SidebarWidth
	}
	if c.UI.WordWrap <= 0 {
		c.UI.WordWrap = def.UI.WordWrap
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the cortex configuration directory (~/.cortex).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".cortex"), nil
}

// Path returns the path of the TOML configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file, applies environment overrides, and
// validates the result. A missing file is not an error; defaults are used.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := Path()
	if err == nil {
		if loadErr := LoadTOML(cfg, path); loadErr != nil && !os.IsNotExist(loadErr) {
			return nil, loadErr
		}
	}

	cfg.fillDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg. Returns an os.IsNotExist error when
// the file is absent.
func LoadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variables on top of file values.
// Environment always wins over the file.
func (c *Config) applyEnvOverrides() {
	if u := os.Getenv("CORTEX_API_URL"); u != "" {
		c.Backend.URL = u
	}
	if secs := os.Getenv("CORTEX_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			c.Backend.TimeoutSecs = n
		}
	}
	if ctx := os.Getenv("CORTEX_DEFAULT_CONTEXT"); ctx != "" {
		c.Backend.DefaultContext = ctx
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("invalid URL %q, expected http(s)://host[:port]", c.Backend.URL),
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("unsupported scheme %q", u.Scheme),
		}
	}
	if c.Backend.TimeoutSecs <= 0 {
		return ValidationError{
			Field:   "backend.timeout_secs",
			Message: "must be positive",
		}
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
// Load failures fall back to defaults with a note on stderr; a broken config
// file should not keep the client from starting.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cortex: config error: %v (using defaults)\n", err)
			cfg = DefaultConfig()
			cfg.applyEnvOverrides()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the global configuration. Intended for tests.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	globalConfig = cfg
	globalConfigMu.Unlock()
}

// =============================================================================
// DISPLAY
// =============================================================================

// EncodeTOML renders the configuration as TOML, as `cortex config show`
// prints it.
func (c *Config) EncodeTOML() (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return sb.String(), nil
}
