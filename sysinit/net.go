// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"context"
	"fmt"

	"github.com/vishvananda/netlink"
)

// LoopbackInterface is the name of the loopback interface.
const LoopbackInterface = "lo"

// SetInterfaceUp brings the network interface with the given name up.
//
// Kernel should configure the loopback address already automatically.
func SetInterfaceUp(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("find link %s: %w", name, err)
	}

	if err := netlink.LinkSetUp(link); err != nil {
		return fmt.Errorf("set link %s up: %w", name, err)
	}

	return nil
}

// WithInterfaceUp returns a [Step] that brings the network interface with the
// given name up using setUp, usually [SetInterfaceUp]. Guest kernels may be
// built without networking, so failure is ignored.
func WithInterfaceUp(setUp func(name string) error, name string) Step {
	return Step{
		Name:   "link " + name,
		Policy: PolicyContinue,
		Fn: func(_ context.Context) error {
			return setUp(name)
		},
	}
}
