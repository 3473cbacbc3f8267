// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/aibor/virtinit/internal/bootstrap"
	"github.com/spf13/pflag"
)

const (
	name = "virtinit"

	usageMessage = `Usage of 'virtinit':
    virtinit [--phase {boot|session}]

Second stage of the guest bootstrap. Run by the first stage as process 1
without arguments. The boot phase starts the session phase on the console
and shuts the guest down once it ends.

Flags:
`
)

type flags struct {
	phase   bootstrap.Phase
	flagSet *pflag.FlagSet
	output  io.Writer
}

func newFlags(output io.Writer) *flags {
	flags := &flags{
		phase:  bootstrap.PhaseBoot,
		output: output,
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) initFlagset(output io.Writer) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.Usage = func() {
		fmt.Fprint(output, usageMessage)
		fs.PrintDefaults()
	}

	fs.Var(
		&f.phase,
		bootstrap.PhaseFlag,
		"phase to run, one of: boot, session",
	)

	f.flagSet = fs
}

// ParseArgs parses the given arguments without the program name. Positional
// arguments are not accepted.
func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		// Usage has been printed already if help was requested.
		if !errors.Is(err, pflag.ErrHelp) {
			f.fail(err.Error())
		}

		return &ParseArgsError{err: err}
	}

	if f.flagSet.NArg() > 0 {
		err := &ParseArgsError{args: f.flagSet.Args()}
		f.fail(err.Error())

		return err
	}

	return nil
}

func (f *flags) fail(msg string) {
	fmt.Fprintln(f.output, msg)
	f.flagSet.Usage()
}
