// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Init is the first stage of the guest bootstrap. It is installed as /init
// and run by the kernel as process 1.
package main

import (
	"context"
	"os"

	"github.com/aibor/virtinit/internal/bootstrap"
)

func main() {
	// Only returns if the second stage could not be executed. There is
	// nothing left to do in that case.
	_ = bootstrap.NewStage0(bootstrap.DefaultConfig()).Run(context.Background())

	os.Exit(0)
}
