// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootstrap

import "errors"

// ErrUnknownPhase is returned for invalid [Phase] values.
var ErrUnknownPhase = errors.New("unknown phase")
