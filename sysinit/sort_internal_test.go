// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		inputMap EnvVars
		expected []string
	}{
		{
			name:     "empty",
			inputMap: EnvVars{},
			expected: []string{},
		},
		{
			name: "session environment",
			inputMap: EnvVars{
				"TERM": "linux",
				"PS1":  `\u@virt:\w\$ `,
				"PATH": "/bin",
				"HOME": "/virt/home",
			},
			expected: []string{
				"HOME",
				"PATH",
				"PS1",
				"TERM",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := []string{}
			for key := range byName(tt.inputMap) {
				actual = append(actual, key)
			}

			assert.Equal(t, tt.expected, actual)
		})
	}
}
