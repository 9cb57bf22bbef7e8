package cst

import (
	"sort"
	"unicode/utf8"
)

// Node is a syntax tree node. Children are ordered by ascending span start
// and lie inside the node's span.
type Node struct {
	Kind     Kind
	Span     Span
	Children []*Node
}

// New creates a node spanning [start, end) with the given children.
func New(kind Kind, start, end int, children ...*Node) *Node {
	return &Node{Kind: kind, Span: Span{Start: start, End: end}, Children: children}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone returns a shallow copy of n with its own child slice.
func (n *Node) Clone() *Node {
	c := *n
	c.Children = append([]*Node(nil), n.Children...)
	return &c
}

// SortChildren orders the children by span start. The sort is stable so
// nodes that share a start keep their relative order.
func (n *Node) SortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Span.Start < n.Children[j].Span.Start
	})
}

// Walk calls fn for n and every descendant in pre-order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Tree is a parsed document: the source text, its line-start table and the
// root node.
type Tree struct {
	Filename string
	Text     string
	Lines    []int
	Root     *Node
}

// NewTree builds a Tree and computes its line-start table.
func NewTree(filename, text string, root *Node) *Tree {
	return &Tree{Filename: filename, Text: text, Lines: LineStarts(text), Root: root}
}

// LineStarts returns the line-start table of text. The first entry is 0,
// each following entry is the offset just past a newline, and len(text) is
// appended when the text does not end in a newline, so every pair of
// consecutive entries delimits one physical line.
func LineStarts(text string) []int {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	if len(text) > 0 && text[len(text)-1] != '\n' {
		lines = append(lines, len(text))
	}
	return lines
}

// Slice returns the source text covered by span.
func (t *Tree) Slice(s Span) string {
	return t.Text[s.Start:s.End]
}

// NodeText returns the source text covered by n.
func (t *Tree) NodeText(n *Node) string {
	return t.Text[n.Span.Start:n.Span.End]
}

// Position converts a byte offset into a 1-based line and column.
func (t *Tree) Position(offset int) Position {
	return PositionOf(t.Filename, t.Text, t.Lines, offset)
}

// PositionOf converts a byte offset into a Position using a line-start table.
func PositionOf(filename, text string, lines []int, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	starts := lines
	if len(text) > 0 && text[len(text)-1] != '\n' && len(starts) > 1 {
		// The trailing entry is the end sentinel, not a line start.
		starts = starts[:len(starts)-1]
	}
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	start := starts[i]
	return Position{
		File:   filename,
		Line:   i + 1,
		Column: utf8.RuneCountInString(text[start:offset]) + 1,
	}
}
