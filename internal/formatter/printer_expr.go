package formatter

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// renderBind writes "stmt in" followed by the body on the next line. The
// "in" moves to its own line when a multi-line statement does not end in a
// closing delimiter.
func (p *printer) renderBind(n *cst.Node, depth int) string {
	out := ""
	stmtDone := false
	for _, c := range n.Children {
		switch {
		case c.Kind == cst.Comment:
			out = p.appendComment(out, c, depth)
		case !stmtDone:
			s := p.render(c, depth)
			sep := " "
			if multiline(s) && !closesBlock(s) {
				sep = p.newline(depth)
			}
			out = glue(out, "", s+sep+kw.in)
			stmtDone = true
		default:
			out = glue(out, p.newline(depth), p.render(c, depth))
		}
	}
	return out
}

// closesBlock reports whether s ends with a closing delimiter or "end".
func closesBlock(s string) bool {
	s = strings.TrimRight(s, " \t\n")
	if s == "" {
		return false
	}
	return strings.IndexByte(")]}>", s[len(s)-1]) >= 0 || strings.HasSuffix(s, "\n"+kw.end) ||
		strings.HasSuffix(s, " "+kw.end)
}

// renderIf writes a conditional on one line when it fits, and otherwise
// with each branch indented under its keyword. An "else if" chain stays
// flat.
func (p *printer) renderIf(n *cst.Node, depth int) string {
	parts := nonComments(n)
	cond := p.render(parts[0], depth)
	then := p.render(parts[1], depth+1)
	elseDepth := depth + 1
	if parts[2].Kind == cst.CtrlIf {
		elseDepth = depth
	}
	els := p.render(parts[2], elseDepth)

	line := kw.ifs + " " + cond + " " + kw.then + " " + then + " " + kw.elses + " " + els
	if !hasComment(n) && !multiline(line) && !p.tooWide(p.indent(depth)+line) {
		return line
	}

	elseSep := p.newline(depth) + kw.elses + p.newline(depth+1)
	if elseDepth == depth {
		elseSep = p.newline(depth) + kw.elses + " "
	}
	seps := []string{kw.ifs + " ", " " + kw.then + p.newline(depth+1), elseSep}
	texts := []string{cond, then, els}
	out := ""
	i := 0
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, depth)
			continue
		}
		out = glue(out, seps[i], texts[i])
		i++
	}
	return out
}

// renderMatch writes the scrutinee and one arm per line.
func (p *printer) renderMatch(n *cst.Node, depth int) string {
	out := ""
	scrutinee := true
	for _, c := range n.Children {
		switch {
		case c.Kind == cst.Comment:
			out = p.appendComment(out, c, depth)
		case scrutinee:
			out = glue(out, kw.match+" ", p.render(c, depth)+" "+kw.with)
			scrutinee = false
		default:
			out = glue(out, p.newline(depth)+"| ", p.render(c, depth))
		}
	}
	return out
}

// renderMatchArm writes "pattern when guard -> body".
func (p *printer) renderMatchArm(n *cst.Node, depth int) string {
	items := nonComments(n)
	last := items[len(items)-1]
	out := ""
	for _, c := range n.Children {
		switch {
		case c.Kind == cst.Comment:
			out = p.appendComment(out, c, depth)
		case c == last:
			sep, s := p.hang(" ->", c, depth)
			out = glue(out, sep, s)
		default:
			out = glue(out, " ", p.render(c, depth))
		}
	}
	return strings.TrimLeft(out, " ")
}

// renderLambda writes "fun params -> body".
func (p *printer) renderLambda(n *cst.Node, depth int) string {
	items := nonComments(n)
	last := items[len(items)-1]
	out := ""
	lead := kw.fun + " "
	for _, c := range n.Children {
		switch {
		case c.Kind == cst.Comment:
			out = p.appendComment(out, c, depth)
			continue
		case c == last:
			sep, s := p.hang(" ->", c, depth)
			out = glue(out, sep, s)
		default:
			out = glue(out, lead, p.render(c, depth))
		}
		lead = " "
	}
	return out
}

// renderApplication writes a function or constructor followed by its
// arguments. An argument written directly against the previous one, as in
// f(x), stays attached; otherwise a single space separates them.
func (p *printer) renderApplication(n *cst.Node, depth int) string {
	out := ""
	prevEnd := -1
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, depth)
			prevEnd = -1
			continue
		}
		sep := p.separator(n.Kind, depth)
		if prevEnd == c.Span.Start || out == "" {
			sep = ""
		}
		out = glue(out, sep, p.render(c, depth))
		prevEnd = c.Span.End
	}
	return out
}

// recordFields counts the fields of a record, leaving out the base record
// of a "with" update.
func recordFields(n *cst.Node) int {
	count := 0
	for _, c := range n.Children {
		if c.Kind == cst.RecordUnit || c.Kind == cst.TypeRecordUnit {
			count++
		}
	}
	return count
}

// renderRecord writes a record or record type. A single field stays on the
// line; two or more fields, or any comment, put one field per line.
func (p *printer) renderRecord(n *cst.Node, depth, inner int) string {
	if len(n.Children) == 0 {
		return "(||)"
	}
	term := p.listTerm(n.Kind, depth)
	if recordFields(n) <= 1 && !hasComment(n) {
		return p.wrap("(|", p.join(n, depth, "", " "+kw.with+" "), "|)", depth)
	}
	return p.block(n, depth, inner, "(|", "|)", func(c *cst.Node) string {
		if c.Kind == cst.RecordUnit || c.Kind == cst.TypeRecordUnit {
			return term
		}
		return " " + kw.with
	})
}

// renderList keeps a short list of one-line items on one line and writes
// longer lists one item per line.
func (p *printer) renderList(n *cst.Node, depth, inner int) string {
	if len(n.Children) == 0 {
		return "[]"
	}
	if !hasComment(n) {
		var items []string
		for _, c := range n.Children {
			items = append(items, p.render(c, inner))
		}
		line := "[" + strings.Join(items, "; ") + "]"
		if !multiline(line) && uniseg.GraphemeClusterCount(line) <= shortListWidth {
			return line
		}
	}
	term := p.listTerm(n.Kind, depth)
	return p.block(n, depth, inner, "[", "]", func(*cst.Node) string { return term })
}

// renderCmdType writes a command type such as "[int; string?] inline-cmd".
func (p *printer) renderCmdType(n *cst.Node, depth, inner int, keyword string) string {
	if len(n.Children) == 0 {
		return "[] " + keyword
	}
	if !hasComment(n) {
		line := "[" + p.join(n, inner, "", "; ") + "] " + keyword
		if !multiline(line) && !p.tooWide(p.indent(depth)+line) {
			return line
		}
	}
	term := p.listTerm(n.Kind, depth)
	return p.block(n, depth, inner, "[", "]", func(*cst.Node) string { return term }) + " " + keyword
}
