// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package winsize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aibor/virtinit/internal/cmdline"
	"github.com/creack/pty"
)

// CmdlineKey is the kernel command line parameter carrying the geometry.
const CmdlineKey = "winsize"

// Source provides a [Geometry].
type Source func() (Geometry, error)

// LiveSource returns a [Source] that runs [Query] with the given timeout,
// usually [QueryTimeout].
func LiveSource(ctx context.Context, in Terminal, out io.Writer, timeout time.Duration) Source {
	return func() (Geometry, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return Query(ctx, in, out)
	}
}

// CmdlineSource returns a [Source] that parses the [CmdlineKey] parameter of
// the given kernel command line.
func CmdlineSource(cmd cmdline.Cmdline) Source {
	return func() (Geometry, error) {
		value, found := cmd.Lookup(CmdlineKey)
		if !found {
			return Geometry{}, fmt.Errorf("%w: no %s parameter", ErrNoGeometry, CmdlineKey)
		}

		return ParseGeometry(value)
	}
}

// Resolve returns the geometry of the first source that succeeds, trying
// live negotiation first and the kernel command line second. Failures are
// logged at debug level. If both fail, [ErrNoGeometry] is returned.
func Resolve(live Source, cmd cmdline.Cmdline) (Geometry, error) {
	sources := []struct {
		name   string
		source Source
	}{
		{"live", live},
		{"cmdline", CmdlineSource(cmd)},
	}

	for _, s := range sources {
		if s.source == nil {
			continue
		}

		geometry, err := s.source()
		if err == nil && geometry.Valid() {
			slog.Debug("Terminal geometry determined",
				slog.String("source", s.name),
				slog.String("geometry", geometry.String()))

			return geometry, nil
		}

		slog.Debug("Terminal geometry source failed",
			slog.String("source", s.name),
			slog.Any("error", err))
	}

	return Geometry{}, ErrNoGeometry
}

// Apply sets the window size of the given terminal. It does nothing and
// returns [ErrInvalidGeometry] unless both dimensions are known.
func Apply(tty *os.File, geometry Geometry) error {
	if !geometry.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidGeometry, geometry)
	}

	err := pty.Setsize(tty, &pty.Winsize{
		Rows: geometry.Rows,
		Cols: geometry.Cols,
	})
	if err != nil {
		return fmt.Errorf("set size: %w", err)
	}

	return nil
}
