// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootstrap_test

import (
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

func openPty(t *testing.T) (*os.File, *os.File) {
	t.Helper()

	ptmx, tty, err := pty.Open()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})

	return ptmx, tty
}
