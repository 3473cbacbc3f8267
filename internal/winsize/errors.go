// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package winsize

import "errors"

var (
	// ErrInvalidGeometry is returned if a geometry has an unparsable or zero
	// dimension.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrNoReport is returned if the terminal input does not contain a cursor
	// position report.
	ErrNoReport = errors.New("no cursor position report")

	// ErrNotTerminal is returned if live negotiation is attempted on
	// something that is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrNoGeometry is returned by [Resolve] if no source provided a
	// geometry.
	ErrNoGeometry = errors.New("no geometry available")
)
