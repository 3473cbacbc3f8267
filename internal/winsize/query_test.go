// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package winsize_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aibor/virtinit/internal/winsize"
	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
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

// answerQuery emulates a terminal emulator on the host side of the console.
// It waits for the complete query and answers with the given responses,
// written one after another with a short pause. The received data is sent on
// the returned channel.
func answerQuery(ptmx *os.File, responses ...string) <-chan string {
	received := make(chan string, 1)

	go func() {
		var (
			data  []byte
			chunk = make([]byte, 64)
		)

		for !strings.Contains(string(data), winsize.QuerySequence()) {
			n, err := ptmx.Read(chunk)
			data = append(data, chunk[:n]...)

			if err != nil {
				break
			}
		}

		for idx, response := range responses {
			if idx > 0 {
				time.Sleep(50 * time.Millisecond)
			}

			_, _ = ptmx.WriteString(response)
		}

		received <- string(data)
	}()

	return received
}

func TestQuery(t *testing.T) {
	ptmx, tty := openPty(t)

	stateBefore, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)

	received := answerQuery(ptmx, "\x1b[40;120R")

	ctx, cancel := context.WithTimeout(t.Context(), winsize.QueryTimeout)
	defer cancel()

	geometry, err := winsize.Query(ctx, tty, tty)
	require.NoError(t, err)

	assert.Equal(t, winsize.Geometry{Rows: 40, Cols: 120}, geometry)
	assert.Equal(t, winsize.QuerySequence(), <-received)

	stateAfter, err := term.GetState(int(tty.Fd()))
	require.NoError(t, err)
	assert.Equal(t, stateBefore, stateAfter, "terminal mode must be restored")
}

func TestQuery_TypeAhead(t *testing.T) {
	ptmx, tty := openPty(t)

	received := answerQuery(ptmx, "lsR", "\x1b[40;", "120R")

	ctx, cancel := context.WithTimeout(t.Context(), winsize.QueryTimeout)
	defer cancel()

	geometry, err := winsize.Query(ctx, tty, tty)
	require.NoError(t, err)

	assert.Equal(t, winsize.Geometry{Rows: 40, Cols: 120}, geometry)

	<-received
}

func TestQuery_InvalidReport(t *testing.T) {
	ptmx, tty := openPty(t)

	received := answerQuery(ptmx, "\x1b[40R")

	ctx, cancel := context.WithTimeout(t.Context(), winsize.QueryTimeout)
	defer cancel()

	_, err := winsize.Query(ctx, tty, tty)
	require.ErrorIs(t, err, winsize.ErrInvalidGeometry)

	<-received
}

func TestQuery_Timeout(t *testing.T) {
	_, tty := openPty(t)

	ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()

	_, err := winsize.Query(ctx, tty, tty)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Less(t, time.Since(start), winsize.QueryTimeout)
}

func TestQuery_Canceled(t *testing.T) {
	_, tty := openPty(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := winsize.Query(ctx, tty, tty)
	require.ErrorIs(t, err, context.Canceled)
}

func TestQuery_NotTerminal(t *testing.T) {
	reader, writer, err := os.Pipe()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = reader.Close()
		_ = writer.Close()
	})

	_, err = winsize.Query(t.Context(), reader, writer)
	require.ErrorIs(t, err, winsize.ErrNotTerminal)
}

func TestApply(t *testing.T) {
	_, tty := openPty(t)

	err := winsize.Apply(tty, winsize.Geometry{Rows: 40, Cols: 120})
	require.NoError(t, err)

	rows, cols, err := pty.Getsize(tty)
	require.NoError(t, err)
	assert.Equal(t, 40, rows)
	assert.Equal(t, 120, cols)
}

func TestApply_Invalid(t *testing.T) {
	_, tty := openPty(t)

	require.NoError(t, winsize.Apply(tty, winsize.Geometry{Rows: 24, Cols: 80}))

	err := winsize.Apply(tty, winsize.Geometry{Rows: 40})
	require.ErrorIs(t, err, winsize.ErrInvalidGeometry)

	rows, cols, err := pty.Getsize(tty)
	require.NoError(t, err)
	assert.Equal(t, 24, rows, "size must be unchanged")
	assert.Equal(t, 80, cols, "size must be unchanged")
}

func TestApply_NotTerminal(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "file")
	require.NoError(t, err)

	t.Cleanup(func() { _ = file.Close() })

	err = winsize.Apply(file, winsize.Geometry{Rows: 40, Cols: 120})
	require.Error(t, err)
}
