// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootstrap

import (
	"context"

	"github.com/aibor/virtinit/sysinit"
)

// Stage0 is the first program the kernel runs.
type Stage0 struct {
	Config Config

	// Mount mounts the host share.
	Mount func(spec sysinit.MountSpec) error

	// Exec replaces the running process. It only returns on failure.
	Exec func(path string, envv []string, args ...string) error
}

// NewStage0 creates a [Stage0] operating on the running system.
func NewStage0(cfg Config) *Stage0 {
	return &Stage0{
		Config: cfg,
		Mount:  sysinit.Mount,
		Exec:   sysinit.Replace,
	}
}

// Run mounts the host share and replaces the process with the second stage
// with empty environment and no arguments. A failing mount is ignored, the
// second stage might be present anyway. If the exec fails, [sysinit.ErrTerminated]
// is returned and the caller is expected to exit successfully.
func (s *Stage0) Run(ctx context.Context) error {
	return sysinit.RunSteps(ctx,
		sysinit.Step{
			Name:   "mount host share",
			Policy: sysinit.PolicyContinue,
			Fn: func(_ context.Context) error {
				return s.Mount(s.Config.HostMount)
			},
		},
		sysinit.Step{
			Name:   "exec " + s.Config.Stage1Path,
			Policy: sysinit.PolicyTerminate,
			Fn: func(_ context.Context) error {
				return s.Exec(s.Config.Stage1Path, []string{})
			},
		},
	)
}
