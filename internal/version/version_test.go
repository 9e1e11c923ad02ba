// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestGet_Defaults(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should default to a non-empty value before ldflags injection")
	}
	if info.GitCommit == "" {
		t.Error("GitCommit should default to a non-empty value before ldflags injection")
	}
}
