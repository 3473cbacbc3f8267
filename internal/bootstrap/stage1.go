// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"github.com/aibor/virtinit/internal/cmdline"
	"github.com/aibor/virtinit/internal/winsize"
	"github.com/aibor/virtinit/sysinit"
	"golang.org/x/term"
)

// PhaseFlag is the command line flag carrying the [Phase].
const PhaseFlag = "phase"

// Stage1 is the second stage program.
type Stage1 struct {
	Config Config

	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	// Mounter mounts [Config.PseudoMounts].
	Mounter *sysinit.Mounter

	// LinkUp brings a network interface up.
	LinkUp func(name string) error

	// IsExecutable checks the sandbox program.
	IsExecutable func(path string) error

	// OnCmdline is called with the kernel command line once it has been
	// read by the session phase.
	OnCmdline func(cmd cmdline.Cmdline)
}

// NewStage1 creates a [Stage1] operating on the running system and the
// standard file descriptors.
func NewStage1(cfg Config) *Stage1 {
	return &Stage1{
		Config:       cfg,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Mounter:      sysinit.SystemMounter(),
		LinkUp:       sysinit.SetInterfaceUp,
		IsExecutable: sysinit.IsExecutable,
	}
}

// Run runs the given [Phase].
func (s *Stage1) Run(ctx context.Context, phase Phase) error {
	switch phase {
	case PhaseBoot:
		return s.Boot(ctx)
	case PhaseSession:
		return s.Session(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
}

// Boot starts the own executable in [PhaseSession] exactly once and waits for
// it. Afterwards, the shutdown sequence is triggered. Errors are ignored, so
// the shutdown is always attempted.
//
// The session runs in a new session so the console can become its
// controlling terminal. Without that, job control and signals from the
// keyboard do not work in interactive shells.
func (s *Stage1) Boot(ctx context.Context) error {
	return sysinit.RunSteps(ctx,
		sysinit.Step{
			Name:   "session",
			Policy: sysinit.PolicyContinue,
			Fn:     s.runSessionPhase,
		},
		sysinit.WithShutdown(s.Config.SysrqTriggerPath, s.Config.Shutdown),
	)
}

func (s *Stage1) runSessionPhase(ctx context.Context) error {
	path := s.selfPath()

	//nolint:gosec
	cmd := exec.CommandContext(ctx, path, "--"+PhaseFlag+"="+string(PhaseSession))
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: s.stdinIsTerminal(),
		Ctty:    0,
	}

	slog.Debug("Start session phase", slog.String("path", path))

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return sysinit.ExitError(exitErr.ExitCode())
		}

		return fmt.Errorf("run session phase: %w", err)
	}

	return nil
}

func (s *Stage1) selfPath() string {
	if _, err := os.Stat(s.Config.SelfPath); err == nil {
		return s.Config.SelfPath
	}

	return os.Args[0]
}

func (s *Stage1) stdinIsTerminal() bool {
	return s.Stdin != nil && term.IsTerminal(int(s.Stdin.Fd()))
}

// Session prepares the system and runs the session program in the
// foreground. Only a failure to set up the environment is returned. All
// other failures, including the exit status of the session program, are
// logged at debug level and ignored.
func (s *Stage1) Session(ctx context.Context) error {
	var cmd cmdline.Cmdline

	return sysinit.RunSteps(ctx,
		sysinit.WithMountTable(s.Mounter, s.Config.PseudoMounts),
		sysinit.WithSymlinks(s.Config.Symlinks),
		sysinit.Step{
			Name:   "cmdline",
			Policy: sysinit.PolicyContinue,
			Fn: func(_ context.Context) error {
				var err error

				cmd, err = cmdline.Read(s.Config.CmdlinePath)
				if err == nil && s.OnCmdline != nil {
					s.OnCmdline(cmd)
				}

				return err
			},
		},
		sysinit.WithInterfaceUp(s.LinkUp, s.Config.Loopback),
		sysinit.Step{
			Name:   "geometry",
			Policy: sysinit.PolicyContinue,
			Fn: func(ctx context.Context) error {
				return s.negotiateGeometry(ctx, cmd)
			},
		},
		sysinit.WithEnv(s.Config.Env),
		sysinit.Step{
			Name:   "home",
			Policy: sysinit.PolicyContinue,
			Fn: func(_ context.Context) error {
				return os.Chdir(s.Config.Home)
			},
		},
		sysinit.Step{
			Name:   "session program",
			Policy: sysinit.PolicyContinue,
			Fn:     s.runSessionProgram,
		},
	)
}

func (s *Stage1) negotiateGeometry(ctx context.Context, cmd cmdline.Cmdline) error {
	live := winsize.LiveSource(ctx, s.Stdin, s.Stdout, s.Config.QueryTimeout)

	geometry, err := winsize.Resolve(live, cmd)
	if err != nil {
		return err
	}

	return winsize.Apply(s.Stdin, geometry)
}

func (s *Stage1) runSessionProgram(ctx context.Context) error {
	path := s.Config.Session.Select(s.IsExecutable)

	slog.Debug("Run session program", slog.String("path", path))

	return sysinit.RunForeground(ctx, sysinit.IO{
		Stdin:  s.Stdin,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	}, path)
}
