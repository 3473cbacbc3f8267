// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package winsize determines the geometry of the console a guest is attached
// to and applies it to the guest's terminal.
//
// Serial consoles do not propagate the size of the host terminal, so the
// kernel assumes 80x24 for them. The size is determined either live, by
// moving the cursor to the bottom right corner and asking the terminal for
// the cursor position, or from the kernel command line parameter
// "winsize=<rows>x<cols>" the host launcher may set.
package winsize
