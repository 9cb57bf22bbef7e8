package parser

import "github.com/usagrada/satysfi-formatter/internal/cst"

// parsePatAs parses "pat (as x)?".
func (p *parser) parsePatAs() *cst.Node {
	pat := p.parsePatCons()
	save := p.pos
	p.skip()
	if p.acceptKeyword("as") {
		p.skip()
		v := p.parseVar()
		return cst.New(cst.PatAs, pat.Span.Start, v.Span.End, pat, v)
	}
	p.pos = save
	return pat
}

// parsePatCons parses "pat :: pat :: ...".
func (p *parser) parsePatCons() *cst.Node {
	items := []*cst.Node{p.parsePatApp()}
	for {
		save := p.pos
		p.skip()
		if !p.has("::") {
			p.pos = save
			break
		}
		p.pos += 2
		p.skip()
		items = append(items, p.parsePatApp())
	}
	if len(items) == 1 {
		return items[0]
	}
	return cst.New(cst.PatCons, items[0].Span.Start, items[len(items)-1].Span.End, items...)
}

// parsePatApp parses a constructor pattern with its optional argument.
func (p *parser) parsePatApp() *cst.Node {
	if !p.atVariantName() {
		return p.parsePatAtom()
	}
	name := p.parseVariantName()
	save := p.pos
	p.skip()
	if p.atPatAtom() {
		arg := p.parsePatAtom()
		return cst.New(cst.PatVariant, name.Span.Start, arg.Span.End, name, arg)
	}
	p.pos = save
	return cst.New(cst.PatVariant, name.Span.Start, name.Span.End, name)
}

// atPatAtom reports whether a simple pattern starts at the cursor.
func (p *parser) atPatAtom() bool {
	c := p.peek()
	switch {
	case c == '_' || c == '(' || c == '[' || c == '`':
		return true
	case c == '#':
		return p.peekAt(1) == '`'
	case c == '?':
		return p.peekAt(1) == ':'
	case p.atNumber():
		return true
	case isLower(c):
		w := p.peekWord()
		return !reserved[w] || w == "true" || w == "false"
	}
	return false
}

// parsePatAtom parses a wildcard, variable, literal or bracketed pattern.
func (p *parser) parsePatAtom() *cst.Node {
	start := p.pos
	c := p.peek()
	switch {
	case c == '_':
		p.pos += 1 + p.wordLen(p.pos+1, isAlnum)
		return cst.New(cst.Pattern, start, p.pos)
	case c == '?' && p.peekAt(1) == ':':
		p.pos += 2
		p.skip()
		v := p.parseVar()
		return cst.New(cst.Pattern, start, v.Span.End)
	case c == '(':
		if p.has("()") {
			p.pos += 2
			return cst.New(cst.ConstUnit, start, p.pos)
		}
		p.pos++
		p.skip()
		first := p.parsePatAs()
		p.skip()
		switch {
		case p.peek() == ',':
			items := []*cst.Node{first}
			for p.peek() == ',' {
				p.pos++
				p.skip()
				items = append(items, p.parsePatAs())
				p.skip()
			}
			p.expect(")")
			return cst.New(cst.PatTuple, start, p.pos, items...)
		case p.peek() == ':' && p.peekAt(1) != ':':
			p.pos++
			p.skip()
			t := p.parseTypeExpr()
			p.skip()
			p.expect(")")
			return cst.New(cst.Parened, start, p.pos, first, t)
		}
		p.expect(")")
		return cst.New(cst.Parened, start, p.pos, first)
	case c == '[':
		p.pos++
		p.skip()
		var items []*cst.Node
		for !p.has("]") {
			items = append(items, p.parsePatAs())
			p.skip()
			if p.peek() == ';' {
				p.pos++
				p.skip()
			} else if !p.has("]") {
				p.fail(p.pos, "expected \";\" or \"]\" in list pattern, found %s", p.describe())
			}
		}
		p.pos++
		return cst.New(cst.PatList, start, p.pos, items...)
	case c == '`' || c == '#':
		return p.parseString()
	case p.atNumber():
		return p.parseNumber()
	case isLower(c):
		if w := p.peekWord(); w == "true" || w == "false" {
			p.pos += len(w)
			return cst.New(cst.ConstBool, start, p.pos)
		}
		return p.parseVar()
	}
	p.fail(p.pos, "unexpected %s in pattern", p.describe())
	return nil
}
