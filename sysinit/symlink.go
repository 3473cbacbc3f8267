// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DevSymlinks returns the symlinks for /dev that shells rely on for process
// substitution and redirections to the standard streams. devtmpfs does not
// provide them.
func DevSymlinks() Symlinks {
	return Symlinks{
		"/dev/fd":     "/proc/self/fd",
		"/dev/stdin":  "/proc/self/fd/0",
		"/dev/stdout": "/proc/self/fd/1",
		"/dev/stderr": "/proc/self/fd/2",
	}
}

// Symlinks is a collection of symbolic links. Keys are symbolic links to
// create with the value being the target to link to.
type Symlinks map[string]string

// CreateSymlinks creates the given symbolic links in lexical order of the
// link paths. Links that exist already are left alone.
//
// This must be run after all file systems have been mounted.
func CreateSymlinks(symlinks Symlinks) error {
	for link, target := range byName(symlinks) {
		err := os.Symlink(target, link)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create symlink %s: %w", link, err)
		}
	}

	return nil
}

// WithSymlinks returns a [Step] that wraps [CreateSymlinks]. Failures are
// ignored, as the links are a convenience only.
func WithSymlinks(symlinks Symlinks) Step {
	return Step{
		Name:   "symlinks",
		Policy: PolicyContinue,
		Fn: func(_ context.Context) error {
			return CreateSymlinks(symlinks)
		},
	}
}
