// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// SysrqTriggerPath is the kernel's magic SysRq control interface.
const SysrqTriggerPath = "/proc/sysrq-trigger"

// SysrqCommand is a single magic SysRq command character.
type SysrqCommand byte

// Magic SysRq commands used for the forced shutdown.
const (
	// SysrqTerminate sends SIGTERM to all processes except init.
	SysrqTerminate SysrqCommand = 'e'
	// SysrqKill sends SIGKILL to all processes except init.
	SysrqKill SysrqCommand = 'i'
	// SysrqSync flushes all mounted file systems.
	SysrqSync SysrqCommand = 's'
	// SysrqReboot reboots immediately without syncing or unmounting.
	SysrqReboot SysrqCommand = 'b'
)

// ShutdownSequence is an ordered list of [SysrqCommand]s.
type ShutdownSequence []SysrqCommand

// DefaultShutdownSequence returns the forced shutdown sequence: terminate
// and kill all processes, flush buffers and reboot.
//
// The guest system should be started with noreboot, so the reboot actually
// stops the virtual machine.
func DefaultShutdownSequence() ShutdownSequence {
	return ShutdownSequence{
		SysrqTerminate,
		SysrqKill,
		SysrqSync,
		SysrqReboot,
	}
}

// Trigger writes each command of the sequence to the control file at the
// given path as independent write.
//
// If the file can not be opened for writing, nothing is written and the
// error is returned. Otherwise results of the single writes are not checked,
// since a successful reboot command never returns anyway. It returns the
// number of write attempts.
func (s ShutdownSequence) Trigger(path string) (int, error) {
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("open control interface: %w", err)
	}
	defer file.Close()

	var attempts int

	for _, cmd := range s {
		attempts++

		if _, err := file.Write([]byte{byte(cmd)}); err != nil {
			slog.Debug("Sysrq write failed", slog.String("command", string(rune(cmd))), slog.Any("error", err))
		}
	}

	return attempts, nil
}

// WithShutdown returns a [Step] that triggers the given [ShutdownSequence]
// on the control file at the given path. Failure is ignored.
func WithShutdown(path string, seq ShutdownSequence) Step {
	return Step{
		Name:   "shutdown",
		Policy: PolicyContinue,
		Fn: func(_ context.Context) error {
			_, err := seq.Trigger(path)
			return err
		},
	}
}
