// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// The sysinit package provides the building blocks of a minimal guest init:
// mounting pseudo file systems whose mount points exist, replacing and
// running processes, setting the environment and the forced shutdown via
// magic SysRq.
//
// Boot sequences are built from [Step]s, each with an explicit
// [ErrorPolicy] that determines what a failure means for the rest of the
// sequence.
package sysinit
