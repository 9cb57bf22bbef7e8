package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	type tc struct {
		args     []string
		contains []string
		absent   []string
	}

	tests := map[string]tc{
		"plain": {
			contains: []string{"ProgramSaty 0.."},
			absent:   []string{"Comment "},
		},
		"with comments": {
			args:     []string{"--comments"},
			contains: []string{"ProgramSaty 0..", "Comment ", `"% note\n"`},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, t.TempDir(), "main.saty", "% note\nlet x = 1 in x\n")

			out, _, err := execute(t, "", append([]string{"tree"}, append(tt.args, path)...)...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "ProgramSaty "), out)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "satysfi-formatter "+version+"\n", out)
}
