// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI entry point of the second stage. It handles
// flag parsing, logging setup and exit codes.
package cmd
