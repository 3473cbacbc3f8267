// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStep(t *testing.T) {
	tests := []struct {
		name        string
		fn          Func
		expectedErr error
	}{
		{
			name:        "nil function",
			expectedErr: ErrNoFunction,
		},
		{
			name: "success",
			fn:   func(_ context.Context) error { return nil },
		},
		{
			name:        "error",
			fn:          func(_ context.Context) error { return assert.AnError },
			expectedErr: assert.AnError,
		},
		{
			name:        "panic without error",
			fn:          func(_ context.Context) error { panic(true) },
			expectedErr: ErrPanic,
		},
		{
			name:        "panic with error",
			fn:          func(_ context.Context) error { panic(assert.AnError) },
			expectedErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runStep(t.Context(), Step{Name: tt.name, Fn: tt.fn})

			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestRunSteps(t *testing.T) {
	failing := func(_ context.Context) error { return assert.AnError }

	tests := []struct {
		name          string
		policies      []ErrorPolicy
		failAt        int
		expectedCalls []int
		expectedErr   error
	}{
		{
			name:          "none",
			expectedCalls: []int{},
		},
		{
			name:          "all succeed",
			policies:      []ErrorPolicy{PolicyAbort, PolicyAbort, PolicyAbort},
			failAt:        -1,
			expectedCalls: []int{0, 1, 2},
		},
		{
			name:          "continue",
			policies:      []ErrorPolicy{PolicyContinue, PolicyContinue, PolicyContinue},
			failAt:        1,
			expectedCalls: []int{0, 1, 2},
		},
		{
			name:          "terminate",
			policies:      []ErrorPolicy{PolicyContinue, PolicyTerminate, PolicyContinue},
			failAt:        1,
			expectedCalls: []int{0, 1},
			expectedErr:   ErrTerminated,
		},
		{
			name:          "abort",
			policies:      []ErrorPolicy{PolicyContinue, PolicyAbort, PolicyContinue},
			failAt:        1,
			expectedCalls: []int{0, 1},
			expectedErr:   assert.AnError,
		},
		{
			name:          "unknown policy",
			policies:      []ErrorPolicy{PolicyContinue, ErrorPolicy(42), PolicyContinue},
			failAt:        1,
			expectedCalls: []int{0, 1},
			expectedErr:   ErrUnknownPolicy,
		},
		{
			name:          "succeeding step ignores policy",
			policies:      []ErrorPolicy{PolicyTerminate, PolicyAbort},
			failAt:        -1,
			expectedCalls: []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := []int{}
			steps := []Step{}

			for idx, policy := range tt.policies {
				steps = append(steps, Step{
					Name:   tt.name,
					Policy: policy,
					Fn: func(ctx context.Context) error {
						calls = append(calls, idx)

						if idx == tt.failAt {
							return failing(ctx)
						}

						return nil
					},
				})
			}

			err := RunSteps(t.Context(), steps...)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expectedCalls, calls)
		})
	}
}

func TestRunSteps_StepError(t *testing.T) {
	err := RunSteps(t.Context(), Step{
		Name:   "env",
		Policy: PolicyAbort,
		Fn:     func(_ context.Context) error { return assert.AnError },
	})

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "env", stepErr.Step)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, errors.Is(err, ErrTerminated))
}

func TestErrorPolicy_String(t *testing.T) {
	assert.Equal(t, "continue", PolicyContinue.String())
	assert.Equal(t, "terminate", PolicyTerminate.String())
	assert.Equal(t, "abort", PolicyAbort.String())
	assert.Equal(t, "ErrorPolicy(7)", ErrorPolicy(7).String())
}
