// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmdline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/virtinit/internal/cmdline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected cmdline.Cmdline
	}{
		{
			name:     "empty",
			input:    "",
			expected: cmdline.Cmdline{},
		},
		{
			name:     "only whitespace",
			input:    " \t\n",
			expected: cmdline.Cmdline{},
		},
		{
			name:  "proc content",
			input: "console=ttyS0 rw init=/init winsize=40x120 quiet\n",
			expected: cmdline.Cmdline{
				"console=ttyS0",
				"rw",
				"init=/init",
				"winsize=40x120",
				"quiet",
			},
		},
		{
			name:  "multiple spaces",
			input: "a  b\tc",
			expected: cmdline.Cmdline{
				"a",
				"b",
				"c",
			},
		},
		{
			name:  "quoted value",
			input: `foo="bar baz" qux`,
			expected: cmdline.Cmdline{
				"foo=bar baz",
				"qux",
			},
		},
		{
			name:  "quoted token",
			input: `"foo=bar baz"`,
			expected: cmdline.Cmdline{
				"foo=bar baz",
			},
		},
		{
			name:  "empty quotes",
			input: `a "" b`,
			expected: cmdline.Cmdline{
				"a",
				"",
				"b",
			},
		},
		{
			name:  "unterminated quote",
			input: `a "b c`,
			expected: cmdline.Cmdline{
				"a",
				"b c",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cmdline.Parse(tt.input))
		})
	}
}

func TestCmdline_Lookup(t *testing.T) {
	cmd := cmdline.Parse("winsize=24x80 debug empty= winsize=40x120 a=b=c")

	tests := []struct {
		name          string
		key           string
		expectedValue string
		expectedFound bool
	}{
		{
			name:          "last wins",
			key:           "winsize",
			expectedValue: "40x120",
			expectedFound: true,
		},
		{
			name:          "empty value",
			key:           "empty",
			expectedValue: "",
			expectedFound: true,
		},
		{
			name:          "value with separator",
			key:           "a",
			expectedValue: "b=c",
			expectedFound: true,
		},
		{
			name: "bare flag",
			key:  "debug",
		},
		{
			name: "missing",
			key:  "console",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, found := cmd.Lookup(tt.key)
			assert.Equal(t, tt.expectedFound, found, "found")
			assert.Equal(t, tt.expectedValue, value, "value")
		})
	}
}

func TestCmdline_Has(t *testing.T) {
	cmd := cmdline.Parse("quiet virtinit.debug=0 virtinit.debug console=ttyS0")

	assert.True(t, cmd.Has("quiet"))
	assert.True(t, cmd.Has("virtinit.debug"))
	assert.False(t, cmd.Has("console"))
	assert.False(t, cmd.Has("debug"))
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmdline")
	require.NoError(t, os.WriteFile(path, []byte("rw winsize=40x120\n"), 0o600))

	cmd, err := cmdline.Read(path)
	require.NoError(t, err)
	assert.Equal(t, cmdline.Cmdline{"rw", "winsize=40x120"}, cmd)

	_, err = cmdline.Read(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
