// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bootstrap implements the two stages of the guest bootstrap.
//
// [Stage0] runs as the kernel's init. It mounts the host share and replaces
// itself with the second stage. [Stage1] runs in two phases: the boot phase
// stays process 1, starts the session phase as a new session on the console
// and shuts the guest down when the session ends. The session phase prepares
// the system and runs the sandbox program.
package bootstrap
