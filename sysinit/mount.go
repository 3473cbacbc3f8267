// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// FSType is a file system type.
type FSType string

// File system types used by the bootstrap.
const (
	FSType9P     FSType = "9p"
	FSTypeDevPts FSType = "devpts"
	FSTypeDevTmp FSType = "devtmpfs"
	FSTypeProc   FSType = "proc"
	FSTypeSys    FSType = "sysfs"
	FSTypeTmp    FSType = "tmpfs"

	defaultDirMode = 0o755
)

// MountSpec describes a single mount point.
type MountSpec struct {
	// Target is the absolute path the file system is mounted at.
	Target string

	// Source is the source device to mount. If empty, the string of the
	// [FSType] is used, which is fine for all pseudo file systems.
	Source string

	// FSType is the files system type.
	FSType FSType

	// Options are additional file system specific parameters as passed to
	// mount(2) as data argument, like "trans=virtio" for 9p.
	Options string

	// ReadOnly mounts the file system read-only.
	ReadOnly bool

	// CreateMode, if not zero, makes the target directory be created with
	// the given permissions before the existence check.
	CreateMode fs.FileMode
}

func (m MountSpec) source() string {
	if m.Source == "" {
		return string(m.FSType)
	}

	return m.Source
}

func (m MountSpec) flags() MountFlags {
	var flags MountFlags
	if m.ReadOnly {
		flags |= MountFlagReadOnly
	}

	return flags
}

// MountTable is an ordered list of mount points. Entries are processed in
// the order given, so parents must precede their children.
type MountTable []MountSpec

// PseudoMountTable returns the mount points for the kernel pseudo file
// systems the session needs: process info, system info, temporary storage,
// device nodes and pseudo terminals.
func PseudoMountTable() MountTable {
	return MountTable{
		{Target: "/proc", FSType: FSTypeProc},
		{Target: "/sys", FSType: FSTypeSys},
		{Target: "/tmp", FSType: FSTypeTmp},
		{Target: "/dev", FSType: FSTypeDevTmp},
		{Target: "/dev/pts", FSType: FSTypeDevPts, CreateMode: defaultDirMode},
	}
}

// Mounter mounts [MountSpec]s whose targets exist in FS.
type Mounter struct {
	// FS is the file system view used for existence checks. Paths are
	// looked up relative to its root, so for the real system it must be
	// rooted at "/".
	FS fs.FS

	// Mount performs the actual mount.
	Mount func(spec MountSpec) error

	// Mkdir creates a target directory.
	Mkdir func(path string, perm fs.FileMode) error
}

// SystemMounter returns a [Mounter] operating on the running system.
func SystemMounter() *Mounter {
	return &Mounter{
		FS:    os.DirFS("/"),
		Mount: Mount,
		Mkdir: os.Mkdir,
	}
}

// Mount mounts the given [MountSpec] with a single mount(2) call. The target
// must exist.
func Mount(spec MountSpec) error {
	return mount(spec.Target, spec.source(), string(spec.FSType), spec.flags(), spec.Options)
}

// MountIfTargetExists mounts the given [MountSpec] if its target directory
// exists. It returns true if a mount was attempted.
//
// If [MountSpec.CreateMode] is set, the target is created first. Failing to
// create it is not an error, the existence check decides.
func (m *Mounter) MountIfTargetExists(spec MountSpec) (bool, error) {
	if spec.CreateMode != 0 {
		err := m.Mkdir(spec.Target, spec.CreateMode)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			slog.Debug("Create mount target failed", slog.String("target", spec.Target), slog.Any("error", err))
		}
	}

	if !m.isDir(spec.Target) {
		return false, nil
	}

	if err := m.Mount(spec); err != nil {
		return true, err
	}

	return true, nil
}

// MountAll processes all entries of the given [MountTable] with
// [Mounter.MountIfTargetExists]. Entries with missing targets are skipped.
// Mount errors do not stop processing. If any occurred, they are returned
// as [MountErrors].
func (m *Mounter) MountAll(table MountTable) error {
	var errs MountErrors

	for _, spec := range table {
		attempted, err := m.MountIfTargetExists(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !attempted {
			slog.Debug("Skip mount, target missing", slog.String("target", spec.Target))
		}
	}

	if errs != nil {
		return errs
	}

	return nil
}

func (m *Mounter) isDir(path string) bool {
	name := strings.TrimPrefix(path, "/")
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(m.FS, name)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// WithMountTable returns a [Step] that mounts the given [MountTable] with
// the given [Mounter]. Mount failures are ignored and the chain continues.
func WithMountTable(mounter *Mounter, table MountTable) Step {
	return Step{
		Name:   "mount",
		Policy: PolicyContinue,
		Fn: func(_ context.Context) error {
			if err := mounter.MountAll(table); err != nil {
				return fmt.Errorf("mount pseudo file systems: %w", err)
			}

			return nil
		},
	}
}
