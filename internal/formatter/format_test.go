package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/usagrada/satysfi-formatter/internal/parser"
)

// golden is one formatting case read from testdata/format.
type golden struct {
	name  string
	input string
	want  string
}

func loadGolden(t *testing.T) []golden {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("testdata", "format", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	var cases []golden
	for _, path := range paths {
		ar, err := txtar.ParseFile(path)
		require.NoError(t, err)
		c := golden{name: strings.TrimSuffix(filepath.Base(path), ".txtar")}
		for _, f := range ar.Files {
			switch f.Name {
			case "input.saty":
				c.input = string(f.Data)
			case "want.saty":
				c.want = string(f.Data)
			}
		}
		require.NotEmpty(t, c.input, "%s has no input.saty section", path)
		require.NotEmpty(t, c.want, "%s has no want.saty section", path)
		cases = append(cases, c)
	}
	return cases
}

func TestFormatGolden(t *testing.T) {
	for _, c := range loadGolden(t) {
		t.Run(c.name, func(t *testing.T) {
			got, err := Format(c.name+".saty", c.input, DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	for _, c := range loadGolden(t) {
		t.Run(c.name, func(t *testing.T) {
			once, err := Format(c.name+".saty", c.input, DefaultConfig())
			require.NoError(t, err)
			twice, err := Format(c.name+".saty", once, DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func commentTexts(t *testing.T, src string) []string {
	t.Helper()
	tree, err := parser.Parse("x.saty", src)
	require.NoError(t, err)
	var texts []string
	for _, c := range RecoverComments(tree) {
		texts = append(texts, c.Text)
	}
	return texts
}

func TestFormatKeepsComments(t *testing.T) {
	for _, c := range loadGolden(t) {
		t.Run(c.name, func(t *testing.T) {
			got, err := Format(c.name+".saty", c.input, DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, commentTexts(t, c.input), commentTexts(t, got))
		})
	}
}

func TestFormat(t *testing.T) {
	type tc struct {
		cfg  Config
		src  string
		want string
	}

	tests := map[string]tc{
		"narrow rows break long text arguments": {
			cfg:  Config{RowLength: 10, IndentUnit: 2, CommandArgSpacing: true},
			src:  "'<+p{short}+p{this is longer}>",
			want: "'<\n  +p { short }\n  +p {\n    this is longer\n  }\n>\n",
		},
		"text argument as wide as a row stays inline": {
			cfg:  Config{RowLength: 10, IndentUnit: 2, CommandArgSpacing: true},
			src:  "'<+p{aaaaaaaaaa}>",
			want: "'<\n  +p { aaaaaaaaaa }\n>\n",
		},
		"text argument one past a row breaks": {
			cfg:  Config{RowLength: 10, IndentUnit: 2, CommandArgSpacing: true},
			src:  "'<+p{aaaaaaaaaaa}>",
			want: "'<\n  +p {\n    aaaaaaaaaaa\n  }\n>\n",
		},
		"wide characters count once": {
			cfg:  Config{RowLength: 10, IndentUnit: 2, CommandArgSpacing: true},
			src:  "'<+p{あいうえおかきくけこ}>",
			want: "'<\n  +p { あいうえおかきくけこ }\n>\n",
		},
		"wide characters one past a row break": {
			cfg:  Config{RowLength: 10, IndentUnit: 2, CommandArgSpacing: true},
			src:  "'<+p{あいうえおかきくけこさ}>",
			want: "'<\n  +p {\n    あいうえおかきくけこさ\n  }\n>\n",
		},
		"combining marks join their base": {
			cfg:  Config{RowLength: 10, IndentUnit: 2, CommandArgSpacing: true},
			src:  "'<+p{" + strings.Repeat("e\u0301", 10) + "}>",
			want: "'<\n  +p { " + strings.Repeat("e\u0301", 10) + " }\n>\n",
		},
		"no space before text arguments": {
			cfg:  Config{RowLength: 80, IndentUnit: 4, CommandArgSpacing: false},
			src:  "'<+p{a}>",
			want: "'<\n    +p{ a }\n>\n",
		},
		"expression arguments keep their space without arg spacing": {
			cfg:  Config{RowLength: 80, IndentUnit: 4, CommandArgSpacing: false},
			src:  "'<+frame[1]{a}>",
			want: "'<\n    +frame [1]{ a }\n>\n",
		},
		"long list goes one item per line": {
			cfg:  DefaultConfig(),
			src:  "let l = [`aaaaaaaaaa`; `bbbbbbbbbb`; `cccccccccc`]\n",
			want: "let l = [\n    `aaaaaaaaaa`;\n    `bbbbbbbbbb`;\n    `cccccccccc`;\n]\n",
		},
		"missing spaces are added": {
			cfg:  DefaultConfig(),
			src:  "let x=1 in x",
			want: "let x = 1\nin\n\nx\n",
		},
		"output ends with one newline": {
			cfg:  DefaultConfig(),
			src:  "let x = 1\n\n\n",
			want: "let x = 1\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Format("x.saty", tt.src, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatParseError(t *testing.T) {
	src := "let x =\n"
	got, err := Format("broken.saty", src, DefaultConfig())
	require.Error(t, err)
	assert.Equal(t, src, got)

	var list *parser.ErrorList
	require.True(t, errors.As(err, &list))
	assert.True(t, list.HasErrors())
}

func TestFormatInvalidConfig(t *testing.T) {
	src := "let x = 1\n"
	got, err := Format("x.saty", src, Config{RowLength: 0, IndentUnit: 4})
	require.Error(t, err)
	assert.Equal(t, src, got)
}
