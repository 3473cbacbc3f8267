// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"iter"
	"maps"
	"slices"
)

// byName iterates the given environment variables or symlinks ordered by
// name, so the system is set up in the same order on every boot.
func byName[V any](entries map[string]V) iter.Seq2[string, V] {
	names := slices.Sorted(maps.Keys(entries))

	return func(yield func(string, V) bool) {
		for _, name := range names {
			if !yield(name, entries[name]) {
				return
			}
		}
	}
}
