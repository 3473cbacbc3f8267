// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootstrap

import (
	"log/slog"
)

// SandboxSelector chooses the session program.
type SandboxSelector struct {
	// Sandbox is used if it is an executable regular file.
	Sandbox string

	// Fallback is used otherwise. It is not checked.
	Fallback string
}

// Select returns Sandbox if check accepts it and Fallback otherwise.
func (s SandboxSelector) Select(check func(path string) error) string {
	err := check(s.Sandbox)
	if err != nil {
		slog.Debug("Use fallback session program",
			slog.String("path", s.Fallback),
			slog.Any("error", err))

		return s.Fallback
	}

	return s.Sandbox
}
