// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package model contains the data structures for the cortex client session.

The package has two halves:

  - Message: a single transcript entry with a role (user, ai, error),
    content, and timestamp.
  - Session: the state container for the whole client. It owns the context
    directory, the active context, the transcript, and the in-flight flags,
    and exposes explicit mutation entry points so every state transition is
    unit-testable without a terminal.

Nothing in this package is persisted. The session lives and dies with the
process, and switching the active context resets the transcript.
*/
package model
