package formatter

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// renderProgram lays out the top-level sections of a document separated by
// blank lines. The preamble of a .saty document is closed by "in".
func (p *printer) renderProgram(n *cst.Node) string {
	out := ""
	pending := ""
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out, pending = p.placeComment(out, pending, c, 0)
			continue
		}
		out = glue(out, pending, p.render(c, 0))
		pending = "\n\n"
		if c.Kind == cst.Preamble && n.Kind == cst.ProgramSaty {
			pending = "\n" + kw.in + "\n\n"
		}
	}
	return strings.TrimLeft(out, "\n")
}

// placeComment appends comment c to out. pending is the separator owed
// before the next element; a comment on its own line takes it over so the
// comment stays with the element that follows.
func (p *printer) placeComment(out, pending string, c *cst.Node, depth int) (string, string) {
	if pending == "" || out == "" || atLineStart(out) || p.trailing(c) {
		return p.appendComment(out, c, depth), pending
	}
	return glue(out, pending, p.render(c, depth)), ""
}

// renderStatements writes one statement per line. Statements that span
// several lines, and modules, are set off by a blank line.
func (p *printer) renderStatements(n *cst.Node, depth int) string {
	stmts := nonComments(n)
	texts := make([]string, len(stmts))
	seps := make([]string, len(stmts))
	prevWide := false
	for i, c := range stmts {
		texts[i] = p.render(c, depth)
		wide := multiline(texts[i]) || c.Kind == cst.ModuleStmt
		switch {
		case i == 0:
		case wide || prevWide:
			seps[i] = "\n" + p.newline(depth)
		default:
			seps[i] = p.newline(depth)
		}
		prevWide = wide
	}

	out := ""
	pending := ""
	i := 0
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out, pending = p.placeComment(out, pending, c, depth)
			continue
		}
		out = glue(out, pending, texts[i])
		i++
		pending = ""
		if i < len(stmts) {
			pending = seps[i]
		}
	}
	return out
}

// hugs reports whether a binding body of kind k starts on the binding's own
// line even when it spans several lines.
func hugs(k cst.Kind) bool {
	switch k {
	case cst.BlockText, cst.InlineText, cst.MathText, cst.Record, cst.List:
		return true
	}
	return false
}

// hang returns the separator and text for a body following lead, such as
// the "=" of a binding. Bodies that do not fit on the line move to the next
// line one level deeper.
func (p *printer) hang(lead string, body *cst.Node, depth int) (string, string) {
	if hugs(body.Kind) {
		return lead + " ", p.render(body, depth)
	}
	s := p.render(body, depth+1)
	if body.Kind != cst.BindStmt && !multiline(s) {
		return lead + " ", s
	}
	return lead + p.newline(depth+1), s
}

// renderLet lays out a binding: the keyword, the bound name and parameters,
// an optional type annotation and the body after "=". The arms of a
// recursive function follow on their own lines.
func (p *printer) renderLet(n *cst.Node, depth int, keyword string) string {
	items := nonComments(n)
	last := items[len(items)-1]
	out := ""
	lead := ""
	if keyword != "" {
		lead = keyword + " "
	}
	for _, c := range n.Children {
		switch {
		case c.Kind == cst.Comment:
			out = p.appendComment(out, c, depth)
			continue
		case c.Kind == cst.LetRecMatchArm:
			out = glue(out, p.newline(depth+1)+"| ", p.render(c, depth+1))
		case c == last:
			sep, s := p.hang(" =", c, depth)
			out = glue(out, sep, s)
		case c.Kind == cst.TypeExpr:
			out = glue(out, " : ", p.render(c, depth))
		default:
			out = glue(out, lead, p.render(c, depth))
		}
		lead = " "
	}
	return out
}

// renderAnd joins the parts of a let-rec or type statement with "and".
func (p *printer) renderAnd(n *cst.Node, depth int, keyword string) string {
	return p.join(n, depth, keyword+" ", p.newline(depth)+kw.and+" ")
}

// renderTypeInner writes a type definition. Variants share one line unless
// that line would be too long, a variant spans several lines or comments
// sit between them.
func (p *printer) renderTypeInner(n *cst.Node, depth, inner int) string {
	var head, variants []string
	for _, c := range nonComments(n) {
		switch c.Kind {
		case cst.TypeVariant:
			variants = append(variants, p.render(c, inner))
		case cst.TypeExpr:
		default:
			head = append(head, p.render(c, depth))
		}
	}
	line := p.indent(depth) + kw.typ + " " + strings.Join(head, " ") + " = " + strings.Join(variants, " | ")
	multi := len(variants) > 0 && (hasComment(n) || multiline(line) || p.tooWide(line))

	out := ""
	eq := false
	i := 0
	for _, c := range n.Children {
		switch c.Kind {
		case cst.Comment:
			d := depth
			if multi && eq {
				d = inner
			}
			out = p.appendComment(out, c, d)
		case cst.TypeVariant:
			sep := " | "
			if !eq {
				out = glue(out, " ", "=")
				eq = true
				sep = " "
			}
			if multi {
				sep = p.newline(inner) + "| "
			}
			out = glue(out, sep, variants[i])
			i++
		case cst.TypeExpr:
			out = glue(out, " = ", p.render(c, depth))
		default:
			sep := " "
			if out == "" {
				sep = ""
			}
			out = glue(out, sep, p.render(c, depth))
		}
	}
	return out
}

// renderModule writes "module Name : sig ... end = struct ... end".
func (p *printer) renderModule(n *cst.Node, depth int) string {
	out := ""
	for _, c := range n.Children {
		switch c.Kind {
		case cst.Comment:
			out = p.appendComment(out, c, depth)
		case cst.ModuleName:
			out = glue(out, kw.module+" ", p.render(c, depth))
		case cst.SigStmt:
			out = glue(out, " : ", p.render(c, depth))
		default:
			out = glue(out, " = ", p.render(c, depth))
		}
	}
	return out
}

func (p *printer) renderSig(n *cst.Node, depth, inner int) string {
	out := kw.sig
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, inner)
			continue
		}
		out = glue(out, p.newline(inner), p.render(c, inner))
	}
	return p.closeLine(out, depth, kw.end)
}

func (p *printer) renderStruct(n *cst.Node, depth, inner int) string {
	out := kw.structure
	if body := p.renderStatements(n, inner); body != "" {
		out = glue(out, p.newline(inner), body)
	}
	return p.closeLine(out, depth, kw.end)
}
