// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Replace replaces the current process image with the executable at the
// given path by execve(2). It returns only on failure.
//
// The path is used as argv[0]. Envv is passed as is, so nil results in an
// empty environment.
func Replace(path string, envv []string, args ...string) error {
	argv := append([]string{path}, args...)
	return execve(path, argv, envv)
}

// IsExecutable checks if the given path is an executable regular file.
//
// It returns an error wrapping [ErrNotExecutable] if it is not.
func IsExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotExecutable, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s: not a regular file", ErrNotExecutable, path)
	}

	if err := access(path, unix.X_OK); err != nil {
		return fmt.Errorf("%w: %w", ErrNotExecutable, err)
	}

	return nil
}

// IO is the set of standard streams a foreground command is attached to.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdIO returns the [IO] of the current process.
func StdIO() IO {
	return IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// ExitError is returned by [RunForeground] if the command ran but exited
// with a non-zero exit code.
type ExitError int

func (e ExitError) Error() string {
	return fmt.Sprintf("exit code %d", int(e))
}

// Code returns the exit code as basic int type.
func (e ExitError) Code() int {
	return int(e)
}

// RunForeground runs the given command attached to the given [IO] and waits
// for it to exit. The command inherits the current environment.
//
// The caller shares its process group with the command, so signals generated
// by the terminal hit both. Until the command exits, SIGINT, SIGQUIT and
// SIGTERM are caught and discarded, leaving it to the command to react to
// them. The dispositions are not set to ignore, as the command would inherit
// that.
//
// The context cancels the command. A non-zero exit is returned as
// [ExitError].
func RunForeground(ctx context.Context, stdio IO, path string, args ...string) error {
	stop := discardSignals(unix.SIGINT, unix.SIGQUIT, unix.SIGTERM)
	defer stop()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ExitError(exitErr.ExitCode())
		}

		return fmt.Errorf("run %s: %w", path, err)
	}

	return nil
}

func discardSignals(signals ...os.Signal) func() {
	signalStream := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(signalStream, signals...)

	go func() {
		for {
			select {
			case sig := <-signalStream:
				slog.Debug("Discard signal", slog.String("signal", sig.String()))
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signalStream)
		close(done)
	}
}
