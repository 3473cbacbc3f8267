// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
)

// ParseArgsError is returned if the command line arguments are rejected.
// Usage has been printed already when it is returned.
//
// It either wraps the error of the flag parser or carries the unexpected
// positional arguments.
type ParseArgsError struct {
	err  error
	args []string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("unexpected arguments: %q", e.args)
	}

	return fmt.Sprintf("flag parse: %v", e.err)
}

// Args returns the rejected positional arguments.
func (e *ParseArgsError) Args() []string {
	return e.args
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
