package formatter

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// renderTextArg writes an inline text literal or a command text argument
// with the delimiters it has in the source. The body goes on its own
// indented lines when it is a block body, begins with a comment, spans
// several lines or is wider than a row.
func (p *printer) renderTextArg(n *cst.Node, depth, inner int) string {
	src := p.text(n)
	open, closer := src[:1], src[len(src)-1:]
	raw := p.join(n, inner, "", "")
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return open + closer
	case open == "<" || strings.HasPrefix(s, "%") || multiline(raw) || p.tooWide(s):
		return p.closeLine(open+p.newline(inner)+s, depth, closer)
	}
	return open + " " + s + " " + closer
}

// renderBlockText writes "'<" and ">" around the block body.
func (p *printer) renderBlockText(n *cst.Node, depth, inner int) string {
	s := strings.TrimSpace(p.join(n, inner, "", ""))
	if s == "" {
		return "'<>"
	}
	return p.closeLine("'<"+p.newline(inner)+s, depth, ">")
}

// renderCmd writes a command name and its arguments, each set off by a
// space. With CommandArgSpacing off, text arguments are written directly
// after the preceding argument. A command terminated by ';' keeps it.
func (p *printer) renderCmd(n *cst.Node, depth int) string {
	out := ""
	for _, c := range n.Children {
		sep := p.separator(n.Kind, depth)
		switch {
		case c.Kind == cst.Comment:
			out = p.appendComment(out, c, depth)
			continue
		case out == "":
			sep = ""
		case c.Kind == cst.CmdTextArg && !p.cfg.CommandArgSpacing:
			sep = ""
		}
		out = glue(out, sep, p.render(c, depth))
	}
	if strings.HasSuffix(p.text(n), ";") {
		out = glue(out, "", ";")
	}
	return out
}

// renderHorizontalSingle writes a run of inline text. Whitespace between
// elements collapses to a single space or line break. The result ends in a
// line break only when its last element is a comment.
func (p *printer) renderHorizontalSingle(n *cst.Node, depth int) string {
	out := ""
	lastComment := false
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, depth)
			lastComment = true
			continue
		}
		lastComment = false
		s := p.render(c, depth)
		if c.Kind == cst.RegularText {
			blank := strings.TrimSpace(s) == ""
			switch {
			case blank && (out == "" || endsInSpace(out)):
				continue
			case out == "" || endsInSpace(out):
				s = strings.TrimLeft(s, " \t\n")
			}
		}
		out += s
	}
	if lastComment {
		return strings.TrimLeft(strings.TrimRight(out, " \t"), " \t\n")
	}
	return strings.TrimSpace(out)
}

func endsInSpace(s string) bool {
	return s != "" && strings.IndexByte(" \t\n", s[len(s)-1]) >= 0
}

// renderRegularText trims every line of plain text and drops blank lines.
// Surrounding whitespace becomes a line break if it held one and a single
// space otherwise.
func (p *printer) renderRegularText(n *cst.Node, depth int) string {
	raw := p.text(n)
	space := func(ws string) string {
		if strings.Contains(ws, "\n") {
			return p.newline(depth)
		}
		return " "
	}
	core := strings.TrimSpace(raw)
	if core == "" {
		return space(raw)
	}
	var lines []string
	for _, l := range strings.Split(core, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	s := strings.Join(lines, p.newline(depth))
	if lead := raw[:len(raw)-len(strings.TrimLeft(raw, " \t\r\n"))]; lead != "" {
		s = space(lead) + s
	}
	if trail := raw[len(strings.TrimRight(raw, " \t\r\n")):]; trail != "" {
		s += space(trail)
	}
	return s
}

// renderHorizontalList writes "| item" lines closed by a lone "|".
func (p *printer) renderHorizontalList(n *cst.Node, depth int) string {
	out := ""
	first := true
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, depth)
			continue
		}
		s := p.render(c, depth)
		sep := p.separator(n.Kind, depth)
		if first {
			sep = strings.TrimLeft(sep, " \t\n")
			first = false
		}
		if s == "" {
			sep = strings.TrimRight(sep, " ")
		}
		out = glue(out, sep, s)
	}
	if out == "" {
		return "|"
	}
	return glue(out, p.newline(depth), "|")
}

// renderBullet writes the stars of an item followed by its text, which
// continues one level deeper.
func (p *printer) renderBullet(n *cst.Node, depth int) string {
	out := ""
	for _, c := range n.Children {
		switch c.Kind {
		case cst.Comment:
			out = p.appendComment(out, c, depth)
		case cst.HorizontalBulletStar:
			out = glue(out, "", p.render(c, depth))
		default:
			if s := p.render(c, depth+1); s != "" {
				out = glue(out, " ", s)
			}
		}
	}
	return out
}

// renderBulletStar writes the stars of an item, indenting nested levels by
// half an indent unit each.
func (p *printer) renderBulletStar(n *cst.Node) string {
	stars := strings.TrimSpace(p.text(n))
	return strings.Repeat(" ", (p.cfg.IndentUnit/2)*(len(stars)-1)) + stars
}
