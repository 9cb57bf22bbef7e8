package formatter

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// renderMathList writes "| a | b |".
func (p *printer) renderMathList(n *cst.Node, depth int) string {
	out := "|"
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, depth)
			continue
		}
		if s := p.render(c, depth); strings.TrimSpace(s) != "" {
			out = glue(out, " ", strings.TrimLeft(s, " \t\n"))
		}
		out = glue(out, " ", "|")
	}
	return out
}

// renderMathSeq writes math tokens. Tokens that touch in the source stay
// together, such as x^2 or \sqrt{x}; others are separated by one space.
func (p *printer) renderMathSeq(n *cst.Node, depth int) string {
	out := ""
	prevEnd := -1
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, depth)
			prevEnd = -1
			continue
		}
		sep := " "
		if out == "" || prevEnd == c.Span.Start {
			sep = ""
		}
		out = glue(out, sep, p.render(c, depth))
		prevEnd = c.Span.End
	}
	return out
}
