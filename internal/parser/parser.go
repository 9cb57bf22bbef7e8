package parser

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// Parse parses a SATySFi document. On failure the returned error is an
// *ErrorList whose first entry carries the line and column of the problem.
func Parse(filename, src string) (tree *cst.Tree, err error) {
	p := newParser(filename, src)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			tree, err = nil, p.errors
		}
	}()
	root := p.parseProgram()
	return cst.NewTree(filename, src, root), nil
}

// parseProgram parses a whole document. The root always spans the entire
// source so every comment has a container.
func (p *parser) parseProgram() *cst.Node {
	var children []*cst.Node
	p.skip()
	if p.has("@stage:") {
		children = append(children, p.parseStage())
		p.skip()
	}
	if h := p.parseHeaders(); h != nil {
		children = append(children, h)
		p.skip()
	}

	var stmts []*cst.Node
	for p.atStatement() {
		stmts = append(stmts, p.parseStatement())
		p.skip()
	}
	if len(stmts) > 0 {
		children = append(children, cst.New(cst.Preamble,
			stmts[0].Span.Start, stmts[len(stmts)-1].Span.End, stmts...))
	}

	kind := cst.ProgramSatyh
	switch {
	case p.eof():
	case len(stmts) > 0:
		p.expectKeyword("in")
		p.skip()
		children = append(children, p.parseExpr())
		kind = cst.ProgramSaty
	default:
		children = append(children, p.parseExpr())
		kind = cst.ProgramSaty
	}
	p.skip()
	if !p.eof() {
		p.fail(p.pos, "unexpected %s", p.describe())
	}
	return cst.New(kind, 0, len(p.src), children...)
}

// parseStage parses "@stage: value".
func (p *parser) parseStage() *cst.Node {
	start := p.pos
	p.expect("@stage:")
	p.skipHSpace()
	n := p.wordLen(p.pos, isAlnum)
	if n == 0 {
		p.fail(p.pos, "expected a stage name, found %s", p.describe())
	}
	p.pos += n
	return cst.New(cst.Stage, start, p.pos)
}

// parseHeaders parses the run of @require: and @import: lines, or returns
// nil when there is none. The package name is the rest of the line.
func (p *parser) parseHeaders() *cst.Node {
	var headers []*cst.Node
	for {
		var kind cst.Kind
		var directive string
		switch {
		case p.has("@require:"):
			kind, directive = cst.HeaderRequire, "@require:"
		case p.has("@import:"):
			kind, directive = cst.HeaderImport, "@import:"
		default:
			if len(headers) == 0 {
				return nil
			}
			return cst.New(cst.Headers, headers[0].Span.Start, headers[len(headers)-1].Span.End, headers...)
		}
		start := p.pos
		p.pos += len(directive)
		p.skipHSpace()
		nameStart := p.pos
		lineEnd := len(p.src)
		if i := strings.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
			lineEnd = p.pos + i
		}
		nameEnd := nameStart + len(strings.TrimRight(p.src[nameStart:lineEnd], " \t\r"))
		if nameEnd == nameStart {
			p.fail(nameStart, "expected a package name after %s", directive)
		}
		p.pos = lineEnd
		headers = append(headers, cst.New(kind, start, nameEnd, cst.New(cst.Pkgname, nameStart, nameEnd)))
		p.skip()
	}
}

// atStatement reports whether a top-level or struct-level statement starts
// at the cursor.
func (p *parser) atStatement() bool {
	switch p.peekWord() {
	case "let", "let-rec", "let-inline", "let-block", "let-math", "let-mutable",
		"type", "module", "open":
		return true
	}
	return false
}

// parseStatement parses one binding statement.
func (p *parser) parseStatement() *cst.Node {
	start := p.pos
	switch kw := p.peekWord(); kw {
	case "let":
		p.pos += len(kw)
		p.skip()
		if p.peekWord() == "open" {
			p.pos += len("open")
			p.skip()
			name := p.parseModulePath()
			return cst.New(cst.OpenStmt, start, name.Span.End, name)
		}
		return p.parseLetBody(cst.LetStmt, start)
	case "let-rec":
		return p.parseLetRec()
	case "let-inline":
		return p.parseLetCmd(cst.LetInlineStmt, kw, '\\')
	case "let-block":
		return p.parseLetCmd(cst.LetBlockStmt, kw, '+')
	case "let-math":
		return p.parseLetCmd(cst.LetMathStmt, kw, '\\')
	case "let-mutable":
		p.pos += len(kw)
		p.skip()
		v := p.parseVar()
		p.skip()
		p.expect("<-")
		p.skip()
		body := p.parseExpr()
		return cst.New(cst.LetMutableStmt, start, body.Span.End, v, body)
	case "type":
		return p.parseTypeStmt()
	case "module":
		return p.parseModule()
	case "open":
		p.pos += len(kw)
		p.skip()
		name := p.parseModulePath()
		return cst.New(cst.OpenStmt, start, name.Span.End, name)
	}
	p.fail(p.pos, "expected a statement, found %s", p.describe())
	return nil
}

// parseLetBody parses "head args* (: type)? = expr" after the keyword.
func (p *parser) parseLetBody(kind cst.Kind, start int) *cst.Node {
	children := []*cst.Node{p.parseLetHead()}
	children = append(children, p.parseArgs()...)
	p.skip()
	if p.peek() == ':' {
		p.pos++
		p.skip()
		children = append(children, p.parseTypeExpr())
		p.skip()
	}
	p.expect("=")
	p.skip()
	body := p.parseExpr()
	children = append(children, body)
	return cst.New(kind, start, body.Span.End, children...)
}

// parseLetHead parses the bound name: a pattern or a parenthesized operator.
func (p *parser) parseLetHead() *cst.Node {
	if op := p.tryParenedOperator(); op != nil {
		return op
	}
	return p.parsePatAtom()
}

// parseArgs parses parameter patterns until none can start.
func (p *parser) parseArgs() []*cst.Node {
	var args []*cst.Node
	for {
		save := p.pos
		p.skip()
		if !p.atPatAtom() {
			p.pos = save
			return args
		}
		args = append(args, p.parsePatAtom())
	}
}

// parseLetRec parses "let-rec inner (and inner)*".
func (p *parser) parseLetRec() *cst.Node {
	start := p.pos
	p.expectKeyword("let-rec")
	var inners []*cst.Node
	for {
		p.skip()
		inners = append(inners, p.parseLetRecInner())
		save := p.pos
		p.skip()
		if !p.acceptKeyword("and") {
			p.pos = save
			break
		}
	}
	return cst.New(cst.LetRecStmt, start, inners[len(inners)-1].Span.End, inners...)
}

func (p *parser) parseLetRecInner() *cst.Node {
	start := p.pos
	children := []*cst.Node{p.parseLetHead()}
	children = append(children, p.parseArgs()...)
	p.skip()
	if p.peek() == ':' {
		p.pos++
		p.skip()
		children = append(children, p.parseTypeExpr())
		p.skip()
	}
	if p.peek() == '|' {
		for {
			armStart := p.pos
			p.pos++
			arm := p.parseArgs()
			p.skip()
			p.expect("=")
			p.skip()
			body := p.parseExpr()
			arm = append(arm, body)
			children = append(children, cst.New(cst.LetRecMatchArm, armStart, body.Span.End, arm...))
			save := p.pos
			p.skip()
			if p.peek() != '|' {
				p.pos = save
				break
			}
		}
		last := children[len(children)-1]
		return cst.New(cst.LetRecInner, start, last.Span.End, children...)
	}
	p.expect("=")
	p.skip()
	body := p.parseExpr()
	children = append(children, body)
	return cst.New(cst.LetRecInner, start, body.Span.End, children...)
}

// parseLetCmd parses let-inline, let-block and let-math definitions. The
// context variable is optional.
func (p *parser) parseLetCmd(kind cst.Kind, kw string, sigil byte) *cst.Node {
	start := p.pos
	p.pos += len(kw)
	p.skip()
	var children []*cst.Node
	if p.peek() != sigil {
		children = append(children, p.parseVar())
		p.skip()
	}
	if p.peek() != sigil {
		p.fail(p.pos, "expected a command name starting with %q, found %s", sigil, p.describe())
	}
	nameKind := cst.InlineCmdName
	switch kind {
	case cst.LetBlockStmt:
		nameKind = cst.BlockCmdName
	case cst.LetMathStmt:
		nameKind = cst.MathCmdName
	}
	children = append(children, p.parseCmdName(nameKind))
	children = append(children, p.parseArgs()...)
	p.skip()
	p.expect("=")
	p.skip()
	body := p.parseExpr()
	children = append(children, body)
	return cst.New(kind, start, body.Span.End, children...)
}

// parseCmdName parses "\name", "+name" or a module-qualified form such as
// "\Mod.name".
func (p *parser) parseCmdName(kind cst.Kind) *cst.Node {
	start := p.pos
	p.pos++ // sigil
	for {
		if n := p.wordLen(p.pos, isUpper); n > 0 && p.peekAt(n) == '.' {
			p.pos += n + 1
			continue
		}
		break
	}
	n := p.wordLen(p.pos, func(c byte) bool { return isLower(c) || isUpper(c) })
	if n == 0 {
		p.fail(p.pos, "expected a command name, found %s", p.describe())
	}
	p.pos += n
	return cst.New(kind, start, p.pos)
}

// parseTypeStmt parses "type inner (and inner)*".
func (p *parser) parseTypeStmt() *cst.Node {
	start := p.pos
	p.expectKeyword("type")
	var inners []*cst.Node
	for {
		p.skip()
		inners = append(inners, p.parseTypeInner())
		save := p.pos
		p.skip()
		if !p.acceptKeyword("and") {
			p.pos = save
			break
		}
	}
	return cst.New(cst.TypeStmt, start, inners[len(inners)-1].Span.End, inners...)
}

// parseTypeInner parses "'a* name = variants" or "'a* name = type".
func (p *parser) parseTypeInner() *cst.Node {
	start := p.pos
	var children []*cst.Node
	for p.peek() == '\'' {
		children = append(children, p.parseTypeParam())
		p.skip()
	}
	children = append(children, p.parseTypeName())
	p.skip()
	p.expect("=")
	p.skip()

	if p.peek() == '|' || p.atVariantName() {
		if p.peek() == '|' {
			p.pos++
			p.skip()
		}
		for {
			children = append(children, p.parseTypeVariant())
			save := p.pos
			p.skip()
			if p.peek() != '|' || p.peekAt(1) == ')' {
				p.pos = save
				break
			}
			p.pos++
			p.skip()
		}
	} else {
		children = append(children, p.parseTypeExpr())
	}
	last := children[len(children)-1]
	return cst.New(cst.TypeInner, start, last.Span.End, children...)
}

// atVariantName reports whether an uppercase name that is not a module
// qualifier starts at the cursor.
func (p *parser) atVariantName() bool {
	n := p.wordLen(p.pos, isUpper)
	return n > 0 && p.peekAt(n) != '.'
}

func (p *parser) parseTypeVariant() *cst.Node {
	start := p.pos
	name := p.parseVariantName()
	save := p.pos
	p.skip()
	if p.acceptKeyword("of") {
		p.skip()
		t := p.parseTypeExpr()
		return cst.New(cst.TypeVariant, start, t.Span.End, name, t)
	}
	p.pos = save
	return cst.New(cst.TypeVariant, start, name.Span.End, name)
}

// parseModule parses "module Name (: sig ... end)? = struct ... end".
func (p *parser) parseModule() *cst.Node {
	start := p.pos
	p.expectKeyword("module")
	p.skip()
	children := []*cst.Node{p.parseModuleName()}
	p.skip()
	if p.peek() == ':' {
		p.pos++
		p.skip()
		children = append(children, p.parseSig())
		p.skip()
	}
	p.expect("=")
	p.skip()
	body := p.parseStruct()
	children = append(children, body)
	return cst.New(cst.ModuleStmt, start, body.Span.End, children...)
}

func (p *parser) parseSig() *cst.Node {
	start := p.pos
	p.expectKeyword("sig")
	var items []*cst.Node
	for {
		p.skip()
		itemStart := p.pos
		switch p.peekWord() {
		case "end":
			p.pos += len("end")
			return cst.New(cst.SigStmt, start, p.pos, items...)
		case "type":
			p.pos += len("type")
			p.skip()
			var children []*cst.Node
			for p.peek() == '\'' {
				children = append(children, p.parseTypeParam())
				p.skip()
			}
			children = append(children, p.parseTypeName())
			children = append(children, p.parseConstraints()...)
			last := children[len(children)-1]
			items = append(items, cst.New(cst.SigTypeStmt, itemStart, last.Span.End, children...))
		case "val":
			p.pos += len("val")
			p.skip()
			var name *cst.Node
			switch c := p.peek(); {
			case c == '\\':
				name = p.parseCmdName(cst.InlineCmdName)
			case c == '+':
				name = p.parseCmdName(cst.BlockCmdName)
			case c == '(':
				if name = p.tryParenedOperator(); name == nil {
					p.fail(p.pos, "expected an operator in parentheses")
				}
			default:
				name = p.parseVar()
			}
			p.skip()
			p.expect(":")
			p.skip()
			children := []*cst.Node{name, p.parseTypeExpr()}
			children = append(children, p.parseConstraints()...)
			last := children[len(children)-1]
			items = append(items, cst.New(cst.SigValStmt, itemStart, last.Span.End, children...))
		case "direct":
			p.pos += len("direct")
			p.skip()
			var name *cst.Node
			if p.peek() == '+' {
				name = p.parseCmdName(cst.BlockCmdName)
			} else {
				name = p.parseCmdName(cst.InlineCmdName)
			}
			p.skip()
			p.expect(":")
			p.skip()
			t := p.parseTypeExpr()
			items = append(items, cst.New(cst.SigDirectStmt, itemStart, t.Span.End, name, t))
		default:
			p.failHint(p.pos, "signatures contain type, val and direct items", "unexpected %s in signature", p.describe())
		}
	}
}

// parseConstraints parses trailing "constraint 'a :: (| ... |)" clauses.
func (p *parser) parseConstraints() []*cst.Node {
	var cs []*cst.Node
	for {
		save := p.pos
		p.skip()
		start := p.pos
		if !p.acceptKeyword("constraint") {
			p.pos = save
			return cs
		}
		p.skip()
		param := p.parseTypeParam()
		p.skip()
		p.expect("::")
		p.skip()
		rec := p.parseTypeRecord()
		cs = append(cs, cst.New(cst.SigConstraint, start, rec.Span.End, param, rec))
	}
}

func (p *parser) parseStruct() *cst.Node {
	start := p.pos
	p.expectKeyword("struct")
	var stmts []*cst.Node
	for {
		p.skip()
		if p.acceptKeyword("end") {
			return cst.New(cst.StructStmt, start, p.pos, stmts...)
		}
		if !p.atStatement() {
			p.fail(p.pos, "expected a statement or \"end\", found %s", p.describe())
		}
		stmts = append(stmts, p.parseStatement())
	}
}
