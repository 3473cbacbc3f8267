// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"

	"github.com/aibor/virtinit/internal/cmdline"
)

func setupLogging(writer io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: level,
		},
	)))
}

// debugRequested reports whether the kernel command line at path carries the
// debug flag. The command line is not available before /proc is mounted, in
// which case debug logging stays off.
func debugRequested(path, flag string) bool {
	cmd, err := cmdline.Read(path)
	if err != nil {
		return false
	}

	return cmd.Has(flag)
}
