package parser

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// parseExpr parses a full expression.
func (p *parser) parseExpr() *cst.Node {
	start := p.pos
	switch kw := p.peekWord(); kw {
	case "let", "let-rec", "let-inline", "let-block", "let-math", "let-mutable":
		stmt := p.parseStatement()
		p.skip()
		p.expectKeyword("in")
		p.skip()
		body := p.parseExpr()
		return cst.New(cst.BindStmt, start, body.Span.End, stmt, body)
	case "if":
		p.pos += len(kw)
		p.skip()
		cond := p.parseExpr()
		p.skip()
		p.expectKeyword("then")
		p.skip()
		then := p.parseExpr()
		p.skip()
		p.expectKeyword("else")
		p.skip()
		els := p.parseExpr()
		return cst.New(cst.CtrlIf, start, els.Span.End, cond, then, els)
	case "while":
		p.pos += len(kw)
		p.skip()
		cond := p.parseExpr()
		p.skip()
		p.expectKeyword("do")
		p.skip()
		body := p.parseExpr()
		return cst.New(cst.CtrlWhile, start, body.Span.End, cond, body)
	case "match":
		return p.parseMatch()
	case "fun":
		p.pos += len(kw)
		var children []*cst.Node
		for {
			p.skip()
			if p.has("->") {
				break
			}
			if !p.atPatAtom() {
				p.fail(p.pos, "expected a parameter or \"->\", found %s", p.describe())
			}
			children = append(children, p.parsePatAtom())
		}
		if len(children) == 0 {
			p.fail(p.pos, "fun needs at least one parameter")
		}
		p.pos += len("->")
		p.skip()
		body := p.parseExpr()
		children = append(children, body)
		return cst.New(cst.Lambda, start, body.Span.End, children...)
	}

	if n := p.wordLen(p.pos, isLower); n > 0 && !reserved[p.src[p.pos:p.pos+n]] {
		save := p.pos
		v := cst.New(cst.Var, p.pos, p.pos+n)
		p.pos += n
		p.skip()
		if p.has("<-") {
			p.pos += len("<-")
			p.skip()
			rhs := p.parseExpr()
			return cst.New(cst.Assignment, start, rhs.Span.End, v, rhs)
		}
		p.pos = save
	}
	return p.parseDyadic()
}

// parseMatch parses "match e with | pat -> e ...".
func (p *parser) parseMatch() *cst.Node {
	start := p.pos
	p.expectKeyword("match")
	p.skip()
	children := []*cst.Node{p.parseExpr()}
	p.skip()
	p.expectKeyword("with")
	p.skip()
	if p.peek() == '|' {
		p.pos++
		p.skip()
	}
	for {
		children = append(children, p.parseMatchArm())
		save := p.pos
		p.skip()
		if p.peek() != '|' || p.peekAt(1) == ')' || p.operatorLen() > 0 {
			p.pos = save
			break
		}
		p.pos++
		p.skip()
	}
	last := children[len(children)-1]
	return cst.New(cst.MatchExpr, start, last.Span.End, children...)
}

func (p *parser) parseMatchArm() *cst.Node {
	start := p.pos
	children := []*cst.Node{p.parsePatAs()}
	p.skip()
	if p.peekWord() == "when" {
		guardStart := p.pos
		p.pos += len("when")
		p.skip()
		g := p.parseExpr()
		children = append(children, cst.New(cst.MatchGuard, guardStart, g.Span.End, g))
		p.skip()
	}
	p.expect("->")
	p.skip()
	body := p.parseExpr()
	children = append(children, body)
	return cst.New(cst.MatchArm, start, body.Span.End, children...)
}

// atCompound reports whether a keyword-introduced expression starts at the
// cursor. Such expressions extend as far to the right as possible.
func (p *parser) atCompound() bool {
	switch p.peekWord() {
	case "let", "let-rec", "let-inline", "let-block", "let-math", "let-mutable",
		"if", "while", "match", "fun":
		return true
	}
	return false
}

// parseDyadic parses operands joined by binary operators. Precedence does
// not affect layout, so the chain is kept flat.
func (p *parser) parseDyadic() *cst.Node {
	first := p.parseUnaryOpExpr()
	children := []*cst.Node{first}
	for {
		save := p.pos
		p.skip()
		n := p.operatorLen()
		if n == 0 {
			p.pos = save
			break
		}
		op := cst.New(cst.BinOperator, p.pos, p.pos+n)
		p.pos += n
		p.skip()
		var rhs *cst.Node
		if p.atCompound() {
			rhs = p.parseExpr()
		} else {
			rhs = p.parseUnaryOpExpr()
		}
		children = append(children, op, rhs)
	}
	if len(children) == 1 {
		return first
	}
	last := children[len(children)-1]
	return cst.New(cst.DyadicExpr, first.Span.Start, last.Span.End, children...)
}

const (
	opFirst = "+-*/^&|=<>:"
	opRest  = "+-*/^&|=<>:!~.?'"
)

// operatorLen returns the length of the binary operator at the cursor, or 0.
func (p *parser) operatorLen() int {
	if p.peekWord() == "mod" {
		return len("mod")
	}
	if p.eof() || strings.IndexByte(opFirst, p.peek()) < 0 {
		return 0
	}
	n := 1
	for p.pos+n < len(p.src) && strings.IndexByte(opRest, p.src[p.pos+n]) >= 0 {
		n++
	}
	switch p.src[p.pos : p.pos+n] {
	case "|", "->", "<-", ":", "=>":
		return 0
	}
	return n
}

// parseUnaryOpExpr parses a prefix "-" or "not" application.
func (p *parser) parseUnaryOpExpr() *cst.Node {
	start := p.pos
	var op *cst.Node
	switch {
	case p.peek() == '-' && !p.atNumber() && strings.IndexByte(opRest, p.peekAt(1)) < 0:
		op = cst.New(cst.UnaryOperator, p.pos, p.pos+1)
		p.pos++
	case p.peekWord() == "not":
		op = cst.New(cst.UnaryOperator, p.pos, p.pos+len("not"))
		p.pos += len("not")
	default:
		return p.parseApplication()
	}
	p.skip()
	operand := p.parseApplication()
	return cst.New(cst.UnaryOperatorExpr, start, operand.Span.End, op, operand)
}

// parseApplication parses a function application or a variant constructor.
func (p *parser) parseApplication() *cst.Node {
	head := p.parseUnary()
	if head.Kind == cst.VariantName {
		save := p.pos
		p.skip()
		if !p.atArg() || p.peek() == '?' {
			p.pos = save
			return head
		}
		arg := p.parseUnary()
		return cst.New(cst.VariantConstructor, head.Span.Start, arg.Span.End, head, arg)
	}

	children := []*cst.Node{head}
	for {
		save := p.pos
		p.skip()
		if !p.atArg() {
			p.pos = save
			break
		}
		if p.peek() == '?' {
			start := p.pos
			if p.has("?*") {
				p.pos += 2
				children = append(children, cst.New(cst.ApplicationArgsOptional, start, p.pos))
				continue
			}
			p.pos += len("?:")
			p.skip()
			arg := p.parseUnary()
			children = append(children, cst.New(cst.ApplicationArgsOptional, start, arg.Span.End, arg))
			continue
		}
		children = append(children, p.parseUnary())
	}
	if len(children) == 1 {
		return head
	}
	last := children[len(children)-1]
	return cst.New(cst.Application, head.Span.Start, last.Span.End, children...)
}

// atArg reports whether an application argument starts at the cursor.
func (p *parser) atArg() bool {
	c := p.peek()
	switch {
	case c == '(' || c == '[' || c == '{' || c == '`':
		return true
	case c == '\'':
		return p.peekAt(1) == '<'
	case c == '$':
		return p.peekAt(1) == '{'
	case c == '#':
		return p.peekAt(1) == '`'
	case c == '?':
		return p.peekAt(1) == ':' || p.peekAt(1) == '*'
	case c == '!':
		return isAlnum(p.peekAt(1)) || p.peekAt(1) == '('
	case isDigit(c) || (c == '.' && isDigit(p.peekAt(1))):
		return true
	case isUpper(c):
		return true
	case isLower(c):
		w := p.peekWord()
		return !reserved[w] || w == "true" || w == "false"
	}
	return false
}

// atNumber reports whether a numeric literal starts at the cursor.
func (p *parser) atNumber() bool {
	i := 0
	if p.peek() == '-' {
		i++
	}
	c := p.peekAt(i)
	return isDigit(c) || (c == '.' && isDigit(p.peekAt(i+1)))
}

// parseUnary parses an atom with its prefix and record-member suffixes.
func (p *parser) parseUnary() *cst.Node {
	if p.peek() == '!' {
		start := p.pos
		prefix := cst.New(cst.UnaryPrefix, p.pos, p.pos+1)
		p.pos++
		operand := p.parseUnary()
		return cst.New(cst.Unary, start, operand.Span.End, prefix, operand)
	}
	n := p.parseAtom()
	for p.peek() == '#' && isLower(p.peekAt(1)) {
		p.pos++
		field := p.parseVar()
		n = cst.New(cst.RecordMember, n.Span.Start, field.Span.End, n, field)
	}
	return n
}

// parseAtom parses a literal, a name or a bracketed expression.
func (p *parser) parseAtom() *cst.Node {
	start := p.pos
	c := p.peek()
	switch {
	case c == '(':
		return p.parseParen()
	case c == '[':
		return p.parseList()
	case c == '{':
		return p.parseInlineText()
	case c == '\'' && p.peekAt(1) == '<':
		return p.parseBlockText()
	case c == '$' && p.peekAt(1) == '{':
		return p.parseMathText()
	case c == '`' || (c == '#' && p.peekAt(1) == '`'):
		return p.parseString()
	case p.atNumber():
		return p.parseNumber()
	case isUpper(c):
		return p.parseUpperName()
	case isLower(c):
		switch w := p.peekWord(); w {
		case "true", "false":
			p.pos += len(w)
			return cst.New(cst.ConstBool, start, p.pos)
		case "command":
			p.pos += len(w)
			p.skip()
			if p.peek() != '\\' {
				p.fail(p.pos, "expected an inline command name after \"command\"")
			}
			name := p.parseCmdName(cst.InlineCmdName)
			return cst.New(cst.CommandApplication, start, name.Span.End, name)
		}
		return p.parseVar()
	}
	p.fail(p.pos, "unexpected %s in expression", p.describe())
	return nil
}

// parseParen parses unit, tuples, records, operators in parentheses and
// parenthesized expressions.
func (p *parser) parseParen() *cst.Node {
	start := p.pos
	switch {
	case p.has("(|"):
		return p.parseRecord()
	case p.has("()"):
		p.pos += 2
		return cst.New(cst.ConstUnit, start, p.pos)
	}
	if op := p.tryParenedOperator(); op != nil {
		return op
	}
	p.pos++
	p.skip()
	first := p.parseExpr()
	p.skip()
	if p.peek() == ',' {
		items := []*cst.Node{first}
		for p.peek() == ',' {
			p.pos++
			p.skip()
			items = append(items, p.parseExpr())
			p.skip()
		}
		p.expect(")")
		return cst.New(cst.Tuple, start, p.pos, items...)
	}
	p.expect(")")
	return cst.New(cst.Parened, start, p.pos, first)
}

// tryParenedOperator parses "(op)" or returns nil without consuming input.
func (p *parser) tryParenedOperator() *cst.Node {
	if p.peek() != '(' || p.has("(|") {
		return nil
	}
	start := p.pos
	p.pos++
	p.skip()
	if n := p.operatorLen(); n > 0 {
		op := cst.New(cst.BinOperator, p.pos, p.pos+n)
		p.pos += n
		p.skip()
		if p.peek() == ')' {
			p.pos++
			return cst.New(cst.Parened, start, p.pos, op)
		}
	}
	p.pos = start
	return nil
}

// parseRecord parses "(| field = e; ... |)" and "(| e with field = e |)".
func (p *parser) parseRecord() *cst.Node {
	start := p.pos
	p.expect("(|")
	p.skip()
	var children []*cst.Node
	if p.has("|)") {
		p.pos += 2
		return cst.New(cst.Record, start, p.pos)
	}
	if !p.atRecordField() {
		children = append(children, p.parseExpr())
		p.skip()
		p.expectKeyword("with")
		p.skip()
	}
	for {
		children = append(children, p.parseRecordUnit())
		p.skip()
		if p.peek() == ';' {
			p.pos++
			p.skip()
		}
		if p.has("|)") {
			p.pos += 2
			return cst.New(cst.Record, start, p.pos, children...)
		}
	}
}

// atRecordField reports whether "name =" starts at the cursor.
func (p *parser) atRecordField() bool {
	n := p.wordLen(p.pos, isLower)
	if n == 0 || reserved[p.src[p.pos:p.pos+n]] {
		return false
	}
	save := p.pos
	p.pos += n
	p.skip()
	ok := p.peek() == '=' && p.peekAt(1) != '='
	p.pos = save
	return ok
}

func (p *parser) parseRecordUnit() *cst.Node {
	start := p.pos
	n := p.wordLen(p.pos, isLower)
	if n == 0 {
		p.fail(p.pos, "expected a record field, found %s", p.describe())
	}
	field := cst.New(cst.VarPtn, p.pos, p.pos+n)
	p.pos += n
	p.skip()
	p.expect("=")
	p.skip()
	value := p.parseExpr()
	return cst.New(cst.RecordUnit, start, value.Span.End, field, value)
}

// parseList parses "[e; e; ...]" with an optional trailing separator.
func (p *parser) parseList() *cst.Node {
	start := p.pos
	p.expect("[")
	p.skip()
	var items []*cst.Node
	for !p.has("]") {
		items = append(items, p.parseExpr())
		p.skip()
		if p.peek() == ';' {
			p.pos++
			p.skip()
		} else if !p.has("]") {
			p.fail(p.pos, "expected \";\" or \"]\" in list, found %s", p.describe())
		}
	}
	p.pos++
	return cst.New(cst.List, start, p.pos, items...)
}

// parseNumber parses integer, float and length literals, including a
// leading minus sign.
func (p *parser) parseNumber() *cst.Node {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	if p.has("0x") || p.has("0X") {
		p.pos += 2
		for c := p.peek(); isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f'); c = p.peek() {
			p.pos++
		}
		return cst.New(cst.ConstInt, start, p.pos)
	}
	kind := cst.ConstInt
	for isDigit(p.peek()) {
		p.pos++
	}
	if p.peek() == '.' && isDigit(p.peekAt(1)) {
		kind = cst.ConstFloat
		p.pos++
		for isDigit(p.peek()) {
			p.pos++
		}
	}
	if n := p.wordLen(p.pos, isLower); n > 0 {
		kind = cst.ConstLength
		p.pos += n
	}
	return cst.New(kind, start, p.pos)
}

// parseString parses a backquoted string literal. The closing quote is a
// run of as many backquotes as the opening one; either end may carry a
// '#' that suppresses surrounding whitespace.
func (p *parser) parseString() *cst.Node {
	start := p.pos
	if p.peek() == '#' {
		p.pos++
	}
	n := 0
	for p.peekAt(n) == '`' {
		n++
	}
	p.pos += n
	quote := strings.Repeat("`", n)
	i := strings.Index(p.src[p.pos:], quote)
	if i < 0 {
		p.fail(start, "unterminated string literal")
	}
	p.pos += i + n
	if p.peek() == '#' {
		p.pos++
	}
	return cst.New(cst.ConstString, start, p.pos)
}

// parseUpperName parses variant names, module-qualified variables and
// "Mod.(e)" expressions.
func (p *parser) parseUpperName() *cst.Node {
	start := p.pos
	end := start + p.wordLen(start, isUpper)
	for end+1 < len(p.src) && p.src[end] == '.' && isUpper(p.src[end+1]) {
		end += 1 + p.wordLen(end+1, isUpper)
	}
	if end+1 < len(p.src) && p.src[end] == '.' {
		switch next := p.src[end+1]; {
		case isLower(next):
			p.pos = end + 1 + p.wordLen(end+1, isLower)
			return cst.New(cst.ModVar, start, p.pos)
		case next == '(':
			mod := cst.New(cst.ModuleName, start, end)
			p.pos = end + 2
			p.skip()
			e := p.parseExpr()
			p.skip()
			p.expect(")")
			return cst.New(cst.ExprWithMod, start, p.pos, mod, e)
		}
	}
	p.pos = end
	return cst.New(cst.VariantName, start, end)
}

// parseVar parses a lowercase identifier that is not a reserved word.
func (p *parser) parseVar() *cst.Node {
	n := p.wordLen(p.pos, isLower)
	if n == 0 {
		p.fail(p.pos, "expected an identifier, found %s", p.describe())
	}
	if w := p.src[p.pos : p.pos+n]; reserved[w] {
		p.fail(p.pos, "unexpected keyword %q", w)
	}
	start := p.pos
	p.pos += n
	return cst.New(cst.Var, start, p.pos)
}

func (p *parser) parseModuleName() *cst.Node {
	n := p.wordLen(p.pos, isUpper)
	if n == 0 {
		p.fail(p.pos, "expected a module name, found %s", p.describe())
	}
	start := p.pos
	p.pos += n
	return cst.New(cst.ModuleName, start, p.pos)
}

// parseModulePath parses "A" or "A.B.C".
func (p *parser) parseModulePath() *cst.Node {
	start := p.pos
	p.parseModuleName()
	for p.peek() == '.' && isUpper(p.peekAt(1)) {
		p.pos++
		p.parseModuleName()
	}
	return cst.New(cst.ModuleName, start, p.pos)
}

func (p *parser) parseVariantName() *cst.Node {
	n := p.wordLen(p.pos, isUpper)
	if n == 0 {
		p.fail(p.pos, "expected a constructor name, found %s", p.describe())
	}
	start := p.pos
	p.pos += n
	return cst.New(cst.VariantName, start, p.pos)
}
