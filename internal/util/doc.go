// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the cortex TUI.
//
// This package contains the string helpers used by the rendering layer:
//
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width aware truncation (CJK safe)
//   - PadRight: display-width aware padding
//
// All helpers count characters or terminal columns, never bytes, so they
// are safe for any UTF-8 input.
package util
