// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/aibor/virtinit/internal/bootstrap"
	"github.com/aibor/virtinit/internal/cmdline"
	"github.com/spf13/pflag"
)

const (
	exitCodeFailure = 1
	exitCodeUsage   = 2
)

// IO provides the standard file descriptors for the command. They must be
// files, as the console is handed on to the session.
type IO struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// StdIO returns [IO] of the running process.
func StdIO() IO {
	return IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func handleParseArgsError(err error) int {
	// [pflag.ErrHelp] is returned when help is requested. So exit without
	// error in this case.
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return exitCodeUsage
}

func handleRunError(err error) int {
	if err == nil {
		return 0
	}

	slog.Error(err.Error())

	return exitCodeFailure
}

func newStage1(cfg bootstrap.Config, stdio IO) *bootstrap.Stage1 {
	stage1 := bootstrap.NewStage1(cfg)
	stage1.Stdin = stdio.Stdin
	stage1.Stdout = stdio.Stdout
	stage1.Stderr = stdio.Stderr

	// The session phase reads the command line once /proc is mounted, which
	// is the first time the debug flag can be seen.
	stage1.OnCmdline = func(cmd cmdline.Cmdline) {
		setupLogging(stdio.Stderr, cmd.Has(cfg.DebugFlag))
	}

	return stage1
}

// Run is the main entry point of the second stage. args are the arguments
// without the program name. It returns the exit code for the process.
func Run(ctx context.Context, cfg bootstrap.Config, args []string, stdio IO) int {
	setupLogging(stdio.Stderr, debugRequested(cfg.CmdlinePath, cfg.DebugFlag))

	flags := newFlags(stdio.Stderr)

	err := flags.ParseArgs(args)
	if err != nil {
		return handleParseArgsError(err)
	}

	slog.Debug("Run phase", slog.String("phase", flags.phase.String()))

	err = newStage1(cfg, stdio).Run(ctx, flags.phase)

	return handleRunError(err)
}
