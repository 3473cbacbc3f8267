// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootstrap

import (
	"fmt"
)

// Phase is the phase [Stage1] runs in.
type Phase string

const (
	// PhaseBoot is the phase of process 1. It wraps [PhaseSession].
	PhaseBoot Phase = "boot"

	// PhaseSession sets up the system and runs the session program.
	PhaseSession Phase = "session"
)

// Phases returns all valid phases.
func Phases() []Phase {
	return []Phase{PhaseBoot, PhaseSession}
}

// String implements [pflag.Value].
func (p *Phase) String() string {
	return string(*p)
}

// Set implements [pflag.Value]. Unknown values are rejected with
// [ErrUnknownPhase].
func (p *Phase) Set(value string) error {
	for _, phase := range Phases() {
		if string(phase) == value {
			*p = phase
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownPhase, value)
}

// Type implements [pflag.Value].
func (*Phase) Type() string {
	return "phase"
}
