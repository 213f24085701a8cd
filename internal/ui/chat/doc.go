// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the full-screen session UI for the Cortex backend.
//
// The view is split into three regions: a sidebar listing the ingested
// contexts, a transcript viewport showing the conversation with the active
// context, and an input line at the bottom. A status bar underneath reports
// backend connectivity and the outcome of the last background operation.
//
// The package follows the Elm architecture of Bubble Tea: Model holds all
// state, Update routes messages, View renders. All backend I/O happens in
// tea.Cmd functions that resolve to the message types in messages.go; the
// update loop itself never blocks.
//
// Conversation state lives in model.Session, which enforces the ordering
// and re-entrancy rules (one in-flight exchange per context, stale replies
// dropped after a context switch). This package only translates key events
// into Session calls and Session state into pixels.
package chat
