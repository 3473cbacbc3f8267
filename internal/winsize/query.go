// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package winsize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	// QueryTimeout is how long [Query] callers should wait for the terminal to
	// answer.
	QueryTimeout = 2 * time.Second

	// Any position beyond the terminal's size is clamped to the bottom right
	// corner.
	outOfRangePosition = 999

	pollInterval = 100 * time.Millisecond
	readSize     = 64
)

// Terminal is the input side of a terminal.
type Terminal interface {
	io.Reader
	Fd() uintptr
}

// QuerySequence returns the escape sequence that makes a terminal report its
// size: save the cursor, move it out of range so it stops at the bottom right
// corner, request the position and restore the cursor.
func QuerySequence() string {
	return ansi.SaveCursor +
		ansi.CursorPosition(outOfRangePosition, outOfRangePosition) +
		ansi.RequestCursorPositionReport +
		ansi.RestoreCursor
}

// Query determines the geometry of the terminal connected to in and out.
//
// The input is switched to raw mode for the duration of the query, so the
// report is neither echoed nor line buffered. Input is read until a complete
// cursor position report has arrived or ctx is done. Other input received
// before the report is discarded. The caller is responsible for setting a
// deadline, usually [QueryTimeout].
func Query(ctx context.Context, in Terminal, out io.Writer) (Geometry, error) {
	fd := int(in.Fd())

	if !term.IsTerminal(fd) {
		return Geometry{}, ErrNotTerminal
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return Geometry{}, fmt.Errorf("raw mode: %w", err)
	}

	defer func() {
		_ = term.Restore(fd, state)
	}()

	_, err = io.WriteString(out, QuerySequence())
	if err != nil {
		return Geometry{}, fmt.Errorf("write query: %w", err)
	}

	return readReport(ctx, in, fd)
}

func readReport(ctx context.Context, in io.Reader, fd int) (Geometry, error) {
	var (
		data  []byte
		chunk = make([]byte, readSize)
		fds   = []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	)

	for {
		timeout, err := pollTimeout(ctx)
		if err != nil {
			return Geometry{}, err
		}

		n, err := unix.Poll(fds, timeout)
		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			return Geometry{}, fmt.Errorf("poll: %w", err)
		}

		if n == 0 {
			continue
		}

		if fds[0].Revents&unix.POLLIN == 0 {
			return Geometry{}, fmt.Errorf("%w: input closed", ErrNoReport)
		}

		n, err = in.Read(chunk)
		data = append(data, chunk[:n]...)

		geometry, parseErr := ParseReport(data)
		if !errors.Is(parseErr, ErrNoReport) {
			return geometry, parseErr
		}

		if err != nil {
			return Geometry{}, fmt.Errorf("read: %w", err)
		}
	}
}

// pollTimeout returns the poll(2) timeout in milliseconds until the next
// check of ctx.
func pollTimeout(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	timeout := pollInterval

	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}

		timeout = min(timeout, remaining)
	}

	return int((timeout + time.Millisecond - 1) / time.Millisecond), nil
}
