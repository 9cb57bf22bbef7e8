package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

func TestSeparator(t *testing.T) {
	type tc struct {
		kind  cst.Kind
		depth int
		want  string
	}

	tests := map[string]tc{
		"command arguments":       {kind: cst.BlockCmd, want: " "},
		"application":             {kind: cst.Application, depth: 2, want: " "},
		"list items":              {kind: cst.List, want: ";\n    "},
		"nested record fields":    {kind: cst.Record, depth: 1, want: ";\n        "},
		"command type items":      {kind: cst.TypeInlineCmd, want: ";\n    "},
		"vertical commands":       {kind: cst.Vertical, depth: 1, want: "\n    "},
		"bullet items":            {kind: cst.HorizontalBulletList, want: "\n"},
		"horizontal list cells":   {kind: cst.HorizontalList, depth: 1, want: "\n    | "},
		"unary operator attaches": {kind: cst.Unary, want: ""},
		"math command attaches":   {kind: cst.MathCmd, want: ""},
		"anything else":           {kind: cst.DyadicExpr, want: " "},
	}

	p := newPrinter(nil, DefaultConfig())
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.separator(tt.kind, tt.depth))
		})
	}
}

func TestIncreasesDepth(t *testing.T) {
	for _, k := range []cst.Kind{cst.BlockText, cst.CmdTextArg, cst.Record, cst.List, cst.MatchArm, cst.StructStmt} {
		assert.True(t, increasesDepth(k), k.String())
	}
	for _, k := range []cst.Kind{cst.Var, cst.Vertical, cst.HorizontalSingle, cst.Application, cst.BindStmt} {
		assert.False(t, increasesDepth(k), k.String())
	}
}

func TestAtLineStart(t *testing.T) {
	type tc struct {
		s    string
		want bool
	}

	tests := map[string]tc{
		"empty":                {s: "", want: false},
		"code":                 {s: "let x = 1", want: false},
		"after newline":        {s: "% c\n", want: true},
		"after indentation":    {s: "% c\n    ", want: true},
		"code on the new line": {s: "% c\n    x", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, atLineStart(tt.s))
		})
	}
}

func TestGlue(t *testing.T) {
	type tc struct {
		out, sep, s string
		want        string
	}

	tests := map[string]tc{
		"empty output takes the separator": {
			out: "", sep: "(|", s: "a", want: "(|a",
		},
		"plain append": {
			out: "a", sep: " = ", s: "b", want: "a = b",
		},
		"line break after comment is not doubled": {
			out: "a % c\n    ", sep: "\n  ", s: "b", want: "a % c\n  b",
		},
		"blank line after comment is kept": {
			out: "% c\n", sep: "\n\n", s: "b", want: "% c\n\nb",
		},
		"inline separator after comment drops leading space": {
			out: "a % c\n    ", sep: " = ", s: "b", want: "a % c\n    = b",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, glue(tt.out, tt.sep, tt.s))
		})
	}
}

func TestFormatTreeUnknownKind(t *testing.T) {
	tree := cst.NewTree("bad.saty", "abc",
		cst.New(cst.ProgramSaty, 0, 3, cst.New(cst.Invalid, 0, 3)))

	out, err := FormatTree(tree, DefaultConfig())
	require.Error(t, err)
	assert.Empty(t, out)

	var ie *InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "render", ie.Stage)
	assert.Equal(t, cst.Invalid, ie.Kind)
	assert.Equal(t, cst.Span{Start: 0, End: 3}, ie.Span)
}
