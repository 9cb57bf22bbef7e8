package cst

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const dumpExcerptLen = 40

// Dump writes an indented outline of the tree to w, one node per line.
// Leaves are followed by a quoted excerpt of their source text.
func Dump(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)
	dumpNode(bw, t, t.Root, 0)
	return bw.Flush()
}

func dumpNode(w *bufio.Writer, t *Tree, n *Node, depth int) {
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(n.Kind.String())
	w.WriteByte(' ')
	w.WriteString(n.Span.String())
	if n.IsLeaf() {
		w.WriteByte(' ')
		w.WriteString(strconv.Quote(excerpt(t.Slice(n.Span))))
	}
	w.WriteByte('\n')
	for _, c := range n.Children {
		dumpNode(w, t, c, depth+1)
	}
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= dumpExcerptLen {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if utf8.RuneCountInString(s[:i]) == dumpExcerptLen {
			break
		}
		b.WriteRune(r)
	}
	b.WriteString("...")
	return b.String()
}
