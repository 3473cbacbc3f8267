// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MountFlags are flags as defined by mount(2).
type MountFlags uintptr

// MountFlagReadOnly mounts the file system read-only.
const MountFlagReadOnly MountFlags = unix.MS_RDONLY

func mount(path, source, fsType string, flags MountFlags, data string) error {
	err := unix.Mount(source, path, fsType, uintptr(flags), data)
	if err != nil {
		return fmt.Errorf("mount %s: %w", path, err)
	}

	return nil
}

func execve(path string, argv []string, envv []string) error {
	err := unix.Exec(path, argv, envv)
	if err != nil {
		return fmt.Errorf("execve %s: %w", path, err)
	}

	return nil
}

func access(path string, mode uint32) error {
	err := unix.Access(path, mode)
	if err != nil {
		return fmt.Errorf("access %s: %w", path, err)
	}

	return nil
}
