// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
)

var (
	// ErrPanic is returned if a [Step] panicked.
	ErrPanic = errors.New("function panicked")

	// ErrNoFunction is returned for a [Step] without function.
	ErrNoFunction = errors.New("no function")

	// ErrTerminated is returned by [RunSteps] if a [Step] with
	// [PolicyTerminate] failed.
	ErrTerminated = errors.New("terminated")

	// ErrUnknownPolicy is returned for a [Step] with an invalid
	// [ErrorPolicy].
	ErrUnknownPolicy = errors.New("unknown error policy")

	// ErrNotExecutable is returned if a file is not an executable regular
	// file.
	ErrNotExecutable = errors.New("not an executable file")
)

// StepError is returned by [RunSteps] if a [Step] with [PolicyAbort] failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Is(other error) bool {
	_, ok := other.(*StepError)
	return ok
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// MountErrors is a collection of errors that occurred while mounting a
// [MountTable].
type MountErrors []error

func (e MountErrors) Error() string {
	return fmt.Sprintf("mount errors: %q", []error(e))
}

func (MountErrors) Is(other error) bool {
	_, ok := other.(MountErrors)
	return ok
}

func (e MountErrors) Unwrap() []error {
	return e
}
