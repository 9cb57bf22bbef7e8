package formatter

import (
	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// AttachComments returns a copy of root with every comment inserted as a
// Comment leaf under the deepest node whose span contains it. The input
// tree is not modified. A comment that no node accepts is an
// *InvariantError.
func AttachComments(root *cst.Node, comments []Comment) (*cst.Node, error) {
	queue := append([]Comment(nil), comments...)
	out := attachNode(root, &queue)
	if len(queue) > 0 {
		c := queue[0]
		return nil, &InvariantError{
			Stage:   "attach",
			Kind:    cst.Comment,
			Span:    c.Span,
			Message: "comment lies outside every node",
		}
	}
	return out, nil
}

// attachNode rebuilds n, taking every queued comment that attaches to n,
// and then recurses into the rebuilt children in order.
func attachNode(n *cst.Node, queue *[]Comment) *cst.Node {
	m := n.Clone()
	var rest []Comment
	for _, c := range *queue {
		if attaches(n, c.Span) {
			m.Children = append(m.Children, cst.New(cst.Comment, c.Span.Start, c.Span.End))
		} else {
			rest = append(rest, c)
		}
	}
	if len(rest) != len(*queue) {
		m.SortChildren()
	}
	*queue = rest
	for i, c := range m.Children {
		if c.Kind == cst.Comment || len(*queue) == 0 {
			continue
		}
		m.Children[i] = attachNode(c, queue)
	}
	return m
}

// attaches reports whether n is the innermost node holding span. Headers
// keep the comments between their lines themselves.
func attaches(n *cst.Node, span cst.Span) bool {
	if !n.Span.Contains(span) {
		return false
	}
	if n.Kind == cst.Headers {
		return true
	}
	for _, c := range n.Children {
		if c.Span.Contains(span) {
			return false
		}
	}
	return true
}
