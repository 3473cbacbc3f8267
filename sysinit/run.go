// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"fmt"
	"log/slog"
)

// Func is the function of a [Step].
type Func func(ctx context.Context) error

// ErrorPolicy determines how [RunSteps] deals with a failing [Step].
type ErrorPolicy int

const (
	// PolicyContinue ignores the error and continues with the next step.
	PolicyContinue ErrorPolicy = iota

	// PolicyTerminate ignores the error and stops the chain. [RunSteps]
	// returns [ErrTerminated], which callers treat as success.
	PolicyTerminate

	// PolicyAbort stops the chain and returns the error as [StepError].
	PolicyAbort
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyContinue:
		return "continue"
	case PolicyTerminate:
		return "terminate"
	case PolicyAbort:
		return "abort"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// Step is a single named operation of a boot sequence along with the policy
// for its failure.
type Step struct {
	Name   string
	Policy ErrorPolicy
	Fn     Func
}

// RunSteps runs the given [Step]s in the order given. Panics are recovered
// and handled like errors wrapping [ErrPanic].
//
// What happens on failure depends on the [ErrorPolicy] of the failing step.
// Ignored errors are logged at debug level.
//
// A typical boot sequence would be:
//
//	err := RunSteps(ctx,
//		[WithMountTable]([SystemMounter](), [PseudoMountTable]()),
//		[WithInterfaceUp]("lo"),
//		[WithEnv]([EnvVars]{"PATH": "/bin"}),
//		Step{Name: "main", Policy: PolicyAbort, Fn: func(ctx context.Context) error {
//			// Your actual main code.
//		}},
//	)
func RunSteps(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		err := runStep(ctx, step)
		if err == nil {
			continue
		}

		logger := slog.With(slog.String("step", step.Name), slog.Any("error", err))

		switch step.Policy {
		case PolicyContinue:
			logger.Debug("Ignore failed step")
		case PolicyTerminate:
			logger.Debug("Terminate after failed step")
			return ErrTerminated
		case PolicyAbort:
			return &StepError{Step: step.Name, Err: err}
		default:
			return &StepError{
				Step: step.Name,
				Err:  fmt.Errorf("%w: %s", ErrUnknownPolicy, step.Policy),
			}
		}
	}

	return nil
}

func runStep(ctx context.Context, step Step) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		if recoveredErr, ok := rec.(error); ok {
			err = fmt.Errorf("%w: %w", ErrPanic, recoveredErr)
		} else {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	if step.Fn == nil {
		return ErrNoFunction
	}

	return step.Fn(ctx)
}
