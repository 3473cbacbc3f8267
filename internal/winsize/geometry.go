// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package winsize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Geometry is the size of a terminal in character cells. Zero values mean
// the dimension is unknown.
type Geometry struct {
	Rows uint16
	Cols uint16
}

// Valid returns true if both dimensions are known.
func (g Geometry) Valid() bool {
	return g.Rows > 0 && g.Cols > 0
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// ParseGeometry parses a geometry in the form "<rows>x<cols>" as used by the
// kernel command line parameter.
func ParseGeometry(s string) (Geometry, error) {
	rowsStr, colsStr, found := strings.Cut(s, "x")
	if !found {
		return Geometry{}, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
	}

	rows, err := parseDimension(rowsStr)
	if err != nil {
		return Geometry{}, fmt.Errorf("rows: %w", err)
	}

	cols, err := parseDimension(colsStr)
	if err != nil {
		return Geometry{}, fmt.Errorf("cols: %w", err)
	}

	return Geometry{Rows: rows, Cols: cols}, nil
}

func parseDimension(s string) (uint16, error) {
	value, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}

	if value == 0 {
		return 0, fmt.Errorf("%w: zero dimension", ErrInvalidGeometry)
	}

	return uint16(value), nil
}

// ParseReport finds the last cursor position report "ESC [ <rows> ; <cols> R"
// in the given terminal input and returns the position as [Geometry].
// Anything else in the input is ignored.
func ParseReport(data []byte) (Geometry, error) {
	var (
		state    byte
		geometry Geometry
		found    bool
		parser   = ansi.NewParser()
	)

	for len(data) > 0 {
		seq, _, n, newState := ansi.DecodeSequence(data, state, parser)
		state = newState
		data = data[max(n, 1):]

		if !ansi.HasCsiPrefix(seq) || parser.Command() != 'R' {
			continue
		}

		rows, _ := parser.Param(0, 0)
		cols, _ := parser.Param(1, 0)

		found = true
		geometry = Geometry{
			Rows: clampDimension(rows),
			Cols: clampDimension(cols),
		}
	}

	if !found {
		return Geometry{}, ErrNoReport
	}

	if !geometry.Valid() {
		return Geometry{}, fmt.Errorf("%w: %s", ErrInvalidGeometry, geometry)
	}

	return geometry, nil
}

func clampDimension(value int) uint16 {
	switch {
	case value < 0:
		return 0
	case value > int(^uint16(0)):
		return ^uint16(0)
	default:
		return uint16(value)
	}
}
