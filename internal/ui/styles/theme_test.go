// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Styles must be initialized, not zero values.
	if !theme.HeaderTitle.GetBold() {
		t.Error("HeaderTitle should be bold")
	}
	if !theme.SidebarActive.GetBold() {
		t.Error("SidebarActive should be bold")
	}
	if !theme.EmptyState.GetItalic() {
		t.Error("EmptyState should be italic")
	}
	if !theme.StatusError.GetBold() {
		t.Error("StatusError should be bold")
	}
}

func TestStatusIndicators(t *testing.T) {
	if StatusIndicators.Connected == "" {
		t.Error("Connected indicator is empty")
	}
	if StatusIndicators.Error == "" {
		t.Error("Error indicator is empty")
	}
	if StatusIndicators.Busy == "" {
		t.Error("Busy indicator is empty")
	}
	if StatusIndicators.Connected == StatusIndicators.Error {
		t.Error("indicators must be distinguishable by shape")
	}
}
