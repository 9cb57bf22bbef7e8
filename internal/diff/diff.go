// Package diff renders the difference between a source file and its
// formatted form as a unified diff.
package diff

import (
	"bytes"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

const noNewline = "\\ No newline at end of file\n"

// maxTable bounds the cells of the subsequence table. A changed middle
// larger than this is replaced wholesale.
const maxTable = 1 << 22

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type edit struct {
	kind opKind
	line string
	orig int // original lines before this edit
	new  int // formatted lines before this edit
}

// Unified returns a unified diff that turns original into formatted, or
// nil when the two are equal.
func Unified(name, original, formatted string) ([]byte, error) {
	if original == formatted {
		return nil, nil
	}
	edits := compute(splitLines(original), splitLines(formatted))
	fd := &godiff.FileDiff{
		OrigName: name + ".orig",
		NewName:  name,
		Hunks:    group(edits, Context),
	}
	return godiff.PrintFileDiff(fd)
}

// splitLines splits s after each newline. The last line keeps no newline
// when s does not end with one.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// compute returns an edit script from a to b based on their longest
// common subsequence. The common prefix and suffix are matched first so
// the quadratic table only covers the changed middle. When the middle is
// too large for the table it is deleted and inserted as a whole.
func compute(a, b []string) []edit {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	ma, mb := a[prefix:len(a)-suffix], b[prefix:len(b)-suffix]
	lcs := table(ma, mb)

	var edits []edit
	oi, ni := 0, 0
	emit := func(kind opKind, line string) {
		edits = append(edits, edit{kind: kind, line: line, orig: oi, new: ni})
		if kind != opInsert {
			oi++
		}
		if kind != opDelete {
			ni++
		}
	}
	for _, l := range a[:prefix] {
		emit(opEqual, l)
	}
	i, j := 0, 0
	for i < len(ma) || j < len(mb) {
		switch {
		case lcs == nil && i < len(ma):
			emit(opDelete, ma[i])
			i++
		case lcs == nil:
			emit(opInsert, mb[j])
			j++
		case i < len(ma) && j < len(mb) && ma[i] == mb[j]:
			emit(opEqual, ma[i])
			i++
			j++
		case i < len(ma) && (j == len(mb) || lcs[i+1][j] >= lcs[i][j+1]):
			emit(opDelete, ma[i])
			i++
		default:
			emit(opInsert, mb[j])
			j++
		}
	}
	for _, l := range a[len(a)-suffix:] {
		emit(opEqual, l)
	}
	return edits
}

// table returns lcs where lcs[i][j] is the length of the common
// subsequence of a[i:] and b[j:], or nil when it would exceed maxTable.
func table(a, b []string) [][]int {
	if (len(a)+1)*(len(b)+1) > maxTable {
		return nil
	}
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}
	return lcs
}

// group collects the edits into hunks with context lines around each run
// of changes. Runs separated by at most twice the context share a hunk.
func group(edits []edit, context int) []*godiff.Hunk {
	var hunks []*godiff.Hunk
	i := 0
	for i < len(edits) {
		if edits[i].kind == opEqual {
			i++
			continue
		}
		start := max(0, i-context)
		last := i
		for j := i; j < len(edits); j++ {
			if edits[j].kind != opEqual {
				last = j
			} else if j-last > 2*context {
				break
			}
		}
		stop := min(len(edits), last+context+1)
		hunks = append(hunks, hunk(edits[start:stop]))
		i = stop
	}
	return hunks
}

func hunk(edits []edit) *godiff.Hunk {
	h := &godiff.Hunk{
		OrigStartLine: int32(edits[0].orig + 1),
		NewStartLine:  int32(edits[0].new + 1),
	}
	var body bytes.Buffer
	for _, e := range edits {
		switch e.kind {
		case opEqual:
			body.WriteByte(' ')
			h.OrigLines++
			h.NewLines++
		case opDelete:
			body.WriteByte('-')
			h.OrigLines++
		case opInsert:
			body.WriteByte('+')
			h.NewLines++
		}
		body.WriteString(e.line)
		if !strings.HasSuffix(e.line, "\n") {
			body.WriteString("\n" + noNewline)
		}
	}
	// An empty side is addressed by the line before it.
	if h.OrigLines == 0 {
		h.OrigStartLine--
	}
	if h.NewLines == 0 {
		h.NewStartLine--
	}
	h.Body = body.Bytes()
	return h
}
