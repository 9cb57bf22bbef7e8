package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	unformatted = "let x=1 in x"
	formatted   = "let x = 1\nin\n\nx\n"
	record      = "let r = (|a = 1; b = 2|) in r"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFmt(t *testing.T) {
	type tc struct {
		content   string
		flags     []string
		wantOut   string
		wantErr   bool
		errSubstr string
		wantFile  string
	}

	tests := map[string]tc{
		"stdout": {
			content:  unformatted,
			wantOut:  formatted,
			wantFile: unformatted,
		},
		"write": {
			content:   unformatted,
			flags:     []string{"-w"},
			errSubstr: "Formatted: ",
			wantFile:  formatted,
		},
		"write already formatted": {
			content:  formatted,
			flags:    []string{"-w"},
			wantFile: formatted,
		},
		"check unformatted": {
			content:   unformatted,
			flags:     []string{"--check"},
			wantErr:   true,
			errSubstr: "1 file(s) not formatted",
			wantFile:  unformatted,
		},
		"check formatted": {
			content:  formatted,
			flags:    []string{"--check"},
			wantFile: formatted,
		},
		"diff": {
			content:  unformatted,
			flags:    []string{"-d"},
			wantFile: unformatted,
		},
		"indent flag": {
			content:  record,
			flags:    []string{"-i", "2"},
			wantOut:  "let r = (|\n  a = 1;\n  b = 2;\n|)\nin\n\nr\n",
			wantFile: record,
		},
		"syntax error": {
			content:   "let x =\n",
			wantErr:   true,
			errSubstr: "1 file(s) had errors",
			wantFile:  "let x =\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, t.TempDir(), "main.saty", tt.content)

			out, errOut, err := execute(t, "", append(tt.flags, path)...)
			if tt.wantErr {
				require.ErrorIs(t, err, errReported)
			} else {
				require.NoError(t, err)
			}
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, out)
			}
			if tt.errSubstr != "" {
				assert.Contains(t, errOut, tt.errSubstr)
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, string(data))
		})
	}
}

func TestFmtDiff(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "main.saty", unformatted)

	out, _, err := execute(t, "", "-d", path)
	require.NoError(t, err)
	assert.Contains(t, out, "--- "+path+".orig")
	assert.Contains(t, out, "+++ "+path)
	assert.Contains(t, out, "-let x=1 in x")
	assert.Contains(t, out, "+let x = 1")
}

func TestFmtList(t *testing.T) {
	dir := t.TempDir()
	dirty := writeTemp(t, dir, "a.saty", unformatted)
	writeTemp(t, dir, "b.saty", formatted)

	out, _, err := execute(t, "", "-l", dir)
	require.NoError(t, err)
	assert.Equal(t, dirty+"\n", out)
}

func TestFmtStdin(t *testing.T) {
	out, _, err := execute(t, unformatted)
	require.NoError(t, err)
	assert.Equal(t, formatted, out)
}

func TestFmtStdinSyntaxError(t *testing.T) {
	out, errOut, err := execute(t, "let x =\n")
	require.ErrorIs(t, err, errReported)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "<stdin>:2:1")
}

func TestFmtOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "main.saty", unformatted)
	dst := filepath.Join(dir, "out.saty")

	_, _, err := execute(t, "", "-o", dst, src)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, formatted, string(data))

	other := writeTemp(t, dir, "other.saty", formatted)
	_, _, err = execute(t, "", "-o", dst, src, other)
	require.ErrorContains(t, err, "exactly one input file")
}

func TestFmtConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, ".satysfi-formatter.yaml", "indent_unit: 2\n")
	path := writeTemp(t, dir, "main.saty", record)

	out, _, err := execute(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "let r = (|\n  a = 1;\n  b = 2;\n|)\nin\n\nr\n", out)

	// A flag given on the command line wins over the file.
	out, _, err = execute(t, "", "-i", "4", path)
	require.NoError(t, err)
	assert.Equal(t, "let r = (|\n    a = 1;\n    b = 2;\n|)\nin\n\nr\n", out)
}

func TestFmtInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, ".satysfi-formatter.yaml", "row_length: 0\n")
	path := writeTemp(t, dir, "main.saty", formatted)

	_, errOut, err := execute(t, "", path)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "row_length must satisfy min=1")
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.saty", "")
	writeTemp(t, dir, "lib.satyh", "")
	writeTemp(t, dir, "notes.txt", "")
	writeTemp(t, dir, "sub/b.satyg", "")
	writeTemp(t, dir, ".hidden/c.saty", "")

	type tc struct {
		args []string
		want []string
	}

	tests := map[string]tc{
		"directory": {
			args: []string{dir},
			want: []string{"a.saty", "lib.satyh"},
		},
		"recursive": {
			args: []string{dir + "/..."},
			want: []string{"a.saty", "lib.satyh", "sub/b.satyg"},
		},
		"explicit file": {
			args: []string{filepath.Join(dir, "notes.txt")},
			want: []string{"notes.txt"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			files, err := collectFiles(tt.args)
			require.NoError(t, err)
			var got []string
			for _, f := range files {
				rel, err := filepath.Rel(dir, f)
				require.NoError(t, err)
				got = append(got, filepath.ToSlash(rel))
			}
			sort.Strings(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollectFilesMissing(t *testing.T) {
	_, err := collectFiles([]string{filepath.Join(t.TempDir(), "missing.saty")})
	require.Error(t, err)
}

func TestFormatFile(t *testing.T) {
	type tc struct {
		content     string
		wantContent string
		wantChanged bool
		wantErr     bool
	}

	tests := map[string]tc{
		"unformatted":  {content: unformatted, wantContent: formatted, wantChanged: true},
		"formatted":    {content: formatted, wantContent: formatted},
		"syntax error": {content: "let x =\n", wantContent: "let x =\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, t.TempDir(), "main.saty", tt.content)
			r := formatFile(&settings{flags: noFlags{}}, path)
			if tt.wantErr {
				require.Error(t, r.err)
			} else {
				require.NoError(t, r.err)
			}
			assert.Equal(t, tt.wantContent, r.Content)
			assert.Equal(t, tt.wantChanged, r.changed())
		})
	}
}
