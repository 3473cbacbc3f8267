// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmdline parses the kernel command line.
package cmdline

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// ProcPath is the path the kernel exposes its command line at.
const ProcPath = "/proc/cmdline"

// Cmdline is a tokenized kernel command line.
type Cmdline []string

// Parse splits the given string into whitespace separated tokens. Double
// quotes group whitespace into a token and are removed, as the kernel does
// for values like `key="a b"`.
func Parse(s string) Cmdline {
	var (
		tokens  = Cmdline{}
		current strings.Builder
		inToken bool
		inQuote bool
	)

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			inToken = true
		case unicode.IsSpace(r) && !inQuote:
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			inToken = false
		default:
			current.WriteRune(r)

			inToken = true
		}
	}

	if inToken {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// Read reads and parses the command line from the given file, usually
// [ProcPath].
func Read(path string) (Cmdline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cmdline: %w", err)
	}

	return Parse(string(data)), nil
}

// Lookup returns the value of the last token of the form key=value. The
// second return value is false if there is no such token.
func (c Cmdline) Lookup(key string) (string, bool) {
	var (
		value string
		found bool
	)

	for _, token := range c {
		k, v, ok := strings.Cut(token, "=")
		if ok && k == key {
			value = v
			found = true
		}
	}

	return value, found
}

// Has reports whether the given flag is present as bare token.
func (c Cmdline) Has(flag string) bool {
	for _, token := range c {
		if token == flag {
			return true
		}
	}

	return false
}
