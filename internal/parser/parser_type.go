package parser

import "github.com/usagrada/satysfi-formatter/internal/cst"

// parseTypeExpr parses products joined by "->" or "?->". The result is
// always a TypeExpr so annotations can be told apart from patterns.
func (p *parser) parseTypeExpr() *cst.Node {
	first := p.parseTypeProd()
	children := []*cst.Node{first}
	for {
		save := p.pos
		p.skip()
		var n int
		switch {
		case p.has("->"):
			n = 2
		case p.has("?->"):
			n = 3
		default:
			p.pos = save
		}
		if n == 0 {
			break
		}
		arrow := cst.New(cst.TypeArrow, p.pos, p.pos+n)
		p.pos += n
		p.skip()
		children = append(children, arrow, p.parseTypeProd())
	}
	last := children[len(children)-1]
	return cst.New(cst.TypeExpr, first.Span.Start, last.Span.End, children...)
}

// parseTypeProd parses "t * t * ...".
func (p *parser) parseTypeProd() *cst.Node {
	items := []*cst.Node{p.parseTypeApp()}
	for {
		save := p.pos
		p.skip()
		if p.peek() != '*' {
			p.pos = save
			break
		}
		p.pos++
		p.skip()
		items = append(items, p.parseTypeApp())
	}
	if len(items) == 1 {
		return items[0]
	}
	return cst.New(cst.TypeProd, items[0].Span.Start, items[len(items)-1].Span.End, items...)
}

// parseTypeApp parses postfix type application such as "int list".
func (p *parser) parseTypeApp() *cst.Node {
	items := []*cst.Node{p.parseTypeAtom()}
	for {
		save := p.pos
		p.skip()
		if !p.atTypeName() {
			p.pos = save
			break
		}
		items = append(items, p.parseTypeName())
	}
	if len(items) == 1 {
		return items[0]
	}
	return cst.New(cst.TypeApplication, items[0].Span.Start, items[len(items)-1].Span.End, items...)
}

// atTypeName reports whether a type name, possibly module-qualified,
// starts at the cursor.
func (p *parser) atTypeName() bool {
	if n := p.wordLen(p.pos, isUpper); n > 0 {
		return p.peekAt(n) == '.'
	}
	w := p.peekWord()
	return w != "" && !reserved[w]
}

func (p *parser) parseTypeAtom() *cst.Node {
	start := p.pos
	switch c := p.peek(); {
	case c == '\'':
		return p.parseTypeParam()
	case c == '(' && p.has("(|"):
		return p.parseTypeRecord()
	case c == '(':
		p.pos++
		p.skip()
		t := p.parseTypeExpr()
		p.skip()
		p.expect(")")
		return cst.New(cst.Parened, start, p.pos, t)
	case c == '[':
		return p.parseCmdType()
	case p.atTypeName():
		return p.parseTypeName()
	}
	p.fail(p.pos, "unexpected %s in type", p.describe())
	return nil
}

func (p *parser) parseTypeParam() *cst.Node {
	start := p.pos
	p.expect("'")
	n := p.wordLen(p.pos, isLower)
	if n == 0 {
		p.fail(p.pos, "expected a type parameter name, found %s", p.describe())
	}
	p.pos += n
	return cst.New(cst.TypeParam, start, p.pos)
}

// parseTypeName parses "name" or "Mod.name".
func (p *parser) parseTypeName() *cst.Node {
	start := p.pos
	for {
		n := p.wordLen(p.pos, isUpper)
		if n == 0 || p.peekAt(n) != '.' {
			break
		}
		p.pos += n + 1
	}
	w := p.peekWord()
	if w == "" || reserved[w] {
		p.fail(p.pos, "expected a type name, found %s", p.describe())
	}
	p.pos += len(w)
	return cst.New(cst.TypeName, start, p.pos)
}

// parseTypeRecord parses "(| field : t; ... |)".
func (p *parser) parseTypeRecord() *cst.Node {
	start := p.pos
	p.expect("(|")
	var units []*cst.Node
	for {
		p.skip()
		if p.has("|)") {
			p.pos += 2
			return cst.New(cst.TypeRecord, start, p.pos, units...)
		}
		unitStart := p.pos
		n := p.wordLen(p.pos, isLower)
		if n == 0 {
			p.fail(p.pos, "expected a record field, found %s", p.describe())
		}
		field := cst.New(cst.VarPtn, p.pos, p.pos+n)
		p.pos += n
		p.skip()
		p.expect(":")
		p.skip()
		t := p.parseTypeExpr()
		units = append(units, cst.New(cst.TypeRecordUnit, unitStart, t.Span.End, field, t))
		p.skip()
		if p.peek() == ';' {
			p.pos++
		} else if !p.has("|)") {
			p.fail(p.pos, "expected \";\" or \"|)\" in record type, found %s", p.describe())
		}
	}
}

// parseCmdType parses "[t; t?; ...] inline-cmd" and its block and math forms.
func (p *parser) parseCmdType() *cst.Node {
	start := p.pos
	p.expect("[")
	var units []*cst.Node
	for {
		p.skip()
		if p.peek() == ']' {
			p.pos++
			break
		}
		t := p.parseTypeExpr()
		save := p.pos
		p.skip()
		if p.peek() == '?' && p.peekAt(1) != '-' {
			p.pos++
			t = cst.New(cst.TypeListUnitOptional, t.Span.Start, p.pos, t)
		} else {
			p.pos = save
		}
		units = append(units, t)
		p.skip()
		if p.peek() == ';' {
			p.pos++
		} else if p.peek() != ']' {
			p.fail(p.pos, "expected \";\" or \"]\" in command type, found %s", p.describe())
		}
	}
	p.skip()
	var kind cst.Kind
	switch w := p.peekWord(); w {
	case "inline-cmd":
		kind = cst.TypeInlineCmd
	case "block-cmd":
		kind = cst.TypeBlockCmd
	case "math-cmd":
		kind = cst.TypeMathCmd
	default:
		p.failHint(p.pos, "command types end in inline-cmd, block-cmd or math-cmd", "unexpected %s after command type", p.describe())
	}
	p.pos += len(p.peekWord())
	return cst.New(kind, start, p.pos, units...)
}
