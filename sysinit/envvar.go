// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"fmt"
	"os"
)

// EnvVars is a map of environment variable values by name.
type EnvVars map[string]string

// SetEnv sets the given [EnvVars] in the environment in lexicographic order
// of their names.
func SetEnv(envVars EnvVars) error {
	for key, value := range byName(envVars) {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	return nil
}

// ReplaceEnv clears the environment and sets only the given [EnvVars].
func ReplaceEnv(envVars EnvVars) error {
	os.Clearenv()

	return SetEnv(envVars)
}

// WithEnv returns a [Step] that wraps [ReplaceEnv]. The session must not run
// with a partial environment, so failure aborts the chain.
func WithEnv(envVars EnvVars) Step {
	return Step{
		Name:   "env",
		Policy: PolicyAbort,
		Fn: func(_ context.Context) error {
			return ReplaceEnv(envVars)
		},
	}
}
