// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootstrap

import (
	"time"

	"github.com/aibor/virtinit/internal/cmdline"
	"github.com/aibor/virtinit/internal/winsize"
	"github.com/aibor/virtinit/sysinit"
)

// Config defines the guest layout both stages operate on.
type Config struct {
	// HostMount is the host share mounted by [Stage0].
	HostMount sysinit.MountSpec

	// Stage1Path is the executable [Stage0] replaces itself with.
	Stage1Path string

	// SelfPath is used by the boot phase to start its own executable. If it
	// does not exist, os.Args[0] is used.
	SelfPath string

	// PseudoMounts are mounted in order by the session phase.
	PseudoMounts sysinit.MountTable

	// Symlinks are created after PseudoMounts.
	Symlinks sysinit.Symlinks

	// Loopback is the interface brought up by the session phase.
	Loopback string

	// CmdlinePath is the kernel command line file.
	CmdlinePath string

	// DebugFlag enables debug logging if present on the kernel command line.
	DebugFlag string

	// QueryTimeout limits the live terminal geometry negotiation.
	QueryTimeout time.Duration

	// Env replaces the inherited environment of the session phase.
	Env sysinit.EnvVars

	// Home is the working directory of the session program, if it exists.
	Home string

	// Session selects the program run by the session phase.
	Session SandboxSelector

	// SysrqTriggerPath is the control file the shutdown sequence is written
	// to.
	SysrqTriggerPath string

	// Shutdown is written to SysrqTriggerPath once the session ended.
	Shutdown sysinit.ShutdownSequence
}

// DefaultConfig returns the [Config] for the standard guest layout.
func DefaultConfig() Config {
	return Config{
		HostMount: sysinit.MountSpec{
			Target:   "/host",
			Source:   "hostfs",
			FSType:   sysinit.FSType9P,
			Options:  "trans=virtio,version=9p2000.L",
			ReadOnly: true,
		},
		Stage1Path:   "/virt/init",
		SelfPath:     "/proc/self/exe",
		PseudoMounts: sysinit.PseudoMountTable(),
		Symlinks:     sysinit.DevSymlinks(),
		Loopback:     sysinit.LoopbackInterface,
		CmdlinePath:  cmdline.ProcPath,
		DebugFlag:    "virtinit.debug",
		QueryTimeout: winsize.QueryTimeout,
		Env: sysinit.EnvVars{
			"PATH": "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin",
			"TERM": "linux",
			"HOME": "/virt/home",
			"PS1":  `\u@virt:\w\$ `,
		},
		Home: "/virt/home",
		Session: SandboxSelector{
			Sandbox:  "/virt/sandbox",
			Fallback: "/bin/bash",
		},
		SysrqTriggerPath: sysinit.SysrqTriggerPath,
		Shutdown:         sysinit.DefaultShutdownSequence(),
	}
}
