package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	type tc struct {
		setup func(f *Formatter)
		input string
		want  string
	}

	tests := map[string]tc{
		"defaults": {
			input: "document(|title = {hello}|)'<+p{hello world}>",
			want:  "document(|title = { hello }|)'<\n    +p { hello world }\n>\n",
		},
		"two space indent": {
			setup: func(f *Formatter) { f.IndentUnit = 2 },
			input: "module M = struct\nlet x = 1\nend",
			want:  "module M = struct\n  let x = 1\nend\n",
		},
		"no argument spacing": {
			setup: func(f *Formatter) { f.CommandArgSpacing = false },
			input: "'<+p{a}>",
			want:  "'<\n    +p{ a }\n>\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := New()
			if tt.setup != nil {
				tt.setup(f)
			}
			got, err := f.Format("test.saty", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatWithResult(t *testing.T) {
	type tc struct {
		input   string
		changed bool
	}

	tests := map[string]tc{
		"needs formatting":  {input: "let x=1", changed: true},
		"already formatted": {input: "let x = 1\n", changed: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := New().FormatWithResult("test.saty", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, res.Changed)
			assert.Equal(t, "let x = 1\n", res.Content)
		})
	}
}

func TestFormatSyntaxError(t *testing.T) {
	src := "let x =\n"
	got, err := New().Format("test.saty", src)
	require.Error(t, err)
	assert.Equal(t, src, got)

	var syntax *SyntaxErrors
	require.True(t, errors.As(err, &syntax))
	first := syntax.First()
	require.NotNil(t, first)
	assert.Equal(t, "test.saty", first.Pos.File)
	assert.Equal(t, 2, first.Pos.Line)

	res, err := New().FormatWithResult("test.saty", src)
	assert.Error(t, err)
	assert.Equal(t, Result{Content: src}, res)
}
