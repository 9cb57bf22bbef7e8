package parser

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// parseMathText parses a math literal "${...}".
func (p *parser) parseMathText() *cst.Node {
	start := p.pos
	p.expect("${")
	body := p.parseMathBody()
	p.expect("}")
	if body == nil {
		return cst.New(cst.MathText, start, p.pos)
	}
	return cst.New(cst.MathText, start, p.pos, body)
}

// parseMathBody parses the interior of "${...}" and leaves the cursor on
// the closing brace. It returns nil for a blank interior.
func (p *parser) parseMathBody() *cst.Node {
	start := p.pos
	if p.lookPast() == '|' {
		p.skip()
		p.expect("|")
		var items []*cst.Node
		for p.lookPast() != '}' {
			itemStart := p.pos
			toks := p.parseMathSeq(true)
			items = append(items, cst.New(cst.MathSingle, itemStart, p.pos, toks...))
			p.expect("|")
		}
		p.skip()
		return cst.New(cst.MathList, start, p.pos, items...)
	}
	toks := p.parseMathSeq(false)
	if strings.TrimSpace(p.src[start:p.pos]) == "" {
		return nil
	}
	return cst.New(cst.MathSingle, start, p.pos, toks...)
}

// parseMathSeq parses math tokens up to '}' or, inside a math list, '|'.
func (p *parser) parseMathSeq(inList bool) []*cst.Node {
	start := p.pos
	var toks []*cst.Node
	for {
		c := p.peek()
		switch {
		case p.eof():
			p.fail(start, "unterminated math")
		case c == '}':
			return toks
		case c == '|' && inList:
			return toks
		case c == '|':
			toks = append(toks, cst.New(cst.MathSymbol, p.pos, p.pos+1))
			p.pos++
		case isSpace(c):
			p.pos++
		case c == '%':
			p.skipComment()
		default:
			toks = append(toks, p.parseMathToken())
		}
	}
}

// mathSpecial holds the characters that end a run of math symbols.
const mathSpecial = "{}^_\\#%|"

func (p *parser) parseMathToken() *cst.Node {
	start := p.pos
	c := p.peek()
	switch {
	case c == '{':
		return p.parseMathGroup()
	case c == '^' || c == '_':
		kind := cst.MathSup
		if c == '_' {
			kind = cst.MathSub
		}
		p.pos++
		for isSpace(p.peek()) {
			p.pos++
		}
		if p.eof() || p.peek() == '}' || p.peek() == '|' {
			p.fail(start, "expected a script after %q", c)
		}
		t := p.parseMathToken()
		return cst.New(kind, start, t.Span.End, t)
	case c == '\\' && (isLower(p.peekAt(1)) || isUpper(p.peekAt(1))):
		return p.parseMathCmd()
	case c == '\\':
		p.pos++
		if p.eof() {
			p.fail(start, "unterminated escape sequence")
		}
		p.advanceRune()
		return cst.New(cst.MathSymbol, start, p.pos)
	case c == '#':
		p.pos++
		var name *cst.Node
		if isUpper(p.peek()) {
			name = p.parseUpperName()
		} else {
			name = p.parseVar()
		}
		return cst.New(cst.MathEmbedding, start, name.Span.End, name)
	}
	for !p.eof() && !isSpace(p.peek()) && strings.IndexByte(mathSpecial, p.peek()) < 0 {
		p.advanceRune()
	}
	if p.pos == start {
		p.fail(start, "unexpected %s in math", p.describe())
	}
	return cst.New(cst.MathSymbol, start, p.pos)
}

// parseMathGroup parses "{...}" inside math.
func (p *parser) parseMathGroup() *cst.Node {
	start := p.pos
	p.expect("{")
	toks := p.parseMathSeq(false)
	p.expect("}")
	return cst.New(cst.MathGroup, start, p.pos, toks...)
}

// parseMathCmd parses a math command and its directly attached arguments.
func (p *parser) parseMathCmd() *cst.Node {
	start := p.pos
	children := []*cst.Node{p.parseCmdName(cst.MathCmdName)}
	for {
		if p.has("?:") {
			optStart := p.pos
			p.pos += 2
			arg := p.parseMathArg()
			if arg == nil {
				p.fail(p.pos, "expected an argument after \"?:\", found %s", p.describe())
			}
			children = append(children, cst.New(cst.MathCmdExprOption, optStart, p.pos, arg))
			continue
		}
		arg := p.parseMathArg()
		if arg == nil {
			break
		}
		children = append(children, arg)
	}
	return cst.New(cst.MathCmd, start, p.pos, children...)
}

// parseMathArg parses "{math}", "!{text}", "!<block>", "!(e)" or "![..]",
// or returns nil.
func (p *parser) parseMathArg() *cst.Node {
	start := p.pos
	var arg *cst.Node
	switch {
	case p.peek() == '{':
		arg = p.parseMathGroup()
	case p.has("!{") || p.has("!<"):
		p.pos++
		arg = p.parseCmdTextArg()
	case p.has("!(") || p.has("!["):
		p.pos++
		arg = p.parseCmdExprArg()
	default:
		return nil
	}
	return cst.New(cst.MathCmdExprArg, start, p.pos, arg)
}
