// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Virtinit is the second stage of the guest bootstrap. It is installed as
// /virt/init and executed by the first stage.
package main

import (
	"context"
	"os"

	"github.com/aibor/virtinit/internal/bootstrap"
	"github.com/aibor/virtinit/internal/cmd"
)

func main() {
	os.Exit(cmd.Run(
		context.Background(),
		bootstrap.DefaultConfig(),
		os.Args[1:],
		cmd.StdIO(),
	))
}
