package parser

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// textMode selects which characters end a run of inline text.
type textMode int

const (
	textSingle textMode = iota
	textListItem
	textBulletItem
)

// parseInlineText parses an inline text literal "{...}".
func (p *parser) parseInlineText() *cst.Node {
	start := p.pos
	p.expect("{")
	body := p.parseHorizontalBody()
	p.expect("}")
	if body == nil {
		return cst.New(cst.InlineText, start, p.pos)
	}
	return cst.New(cst.InlineText, start, p.pos, body)
}

// parseBlockText parses a block text literal "'<...>".
func (p *parser) parseBlockText() *cst.Node {
	start := p.pos
	p.expect("'<")
	body := p.parseVerticalBody()
	p.expect(">")
	if body == nil {
		return cst.New(cst.BlockText, start, p.pos)
	}
	return cst.New(cst.BlockText, start, p.pos, body)
}

// parseHorizontalBody parses the interior of "{...}" and leaves the cursor
// on the closing brace. It returns nil for a blank interior.
func (p *parser) parseHorizontalBody() *cst.Node {
	start := p.pos
	switch p.lookPast() {
	case '}':
		p.skip()
		if strings.TrimSpace(p.src[start:p.pos]) == "" {
			return nil
		}
		return cst.New(cst.HorizontalSingle, start, p.pos)
	case '*':
		return p.parseBulletList(start)
	case '|':
		return p.parseHorizontalList(start)
	}
	return p.parseHorizontalSingle(textSingle)
}

// parseHorizontalSingle parses a run of inline text up to the closing
// brace or the mode's item separator.
func (p *parser) parseHorizontalSingle(mode textMode) *cst.Node {
	start := p.pos
	var elems []*cst.Node
loop:
	for {
		c := p.peek()
		switch {
		case p.eof():
			p.fail(start, "unterminated inline text")
		case c == '}':
			break loop
		case c == '|' && mode == textListItem:
			break loop
		case c == '*' && mode == textBulletItem:
			break loop
		case c == '%':
			p.skipComment()
		case c == '\\' && (isLower(p.peekAt(1)) || isUpper(p.peekAt(1))):
			elems = append(elems, p.parseInlineCmd())
		case c == '\\':
			escStart := p.pos
			p.pos++
			if p.eof() {
				p.fail(escStart, "unterminated escape sequence")
			}
			p.advanceRune()
			elems = append(elems, cst.New(cst.HorizontalEscapedChar, escStart, p.pos))
		case c == '`' || (c == '#' && p.peekAt(1) == '`'):
			elems = append(elems, p.parseString())
		case c == '#':
			elems = append(elems, p.parseEmbedding(cst.InlineTextEmbedding))
		case c == '$' && p.peekAt(1) == '{':
			elems = append(elems, p.parseMathText())
		case c == '{':
			p.failHint(p.pos, "escape it as \\{", "unexpected '{' in inline text")
		default:
			elems = append(elems, p.parseRegularText(mode))
		}
	}
	return cst.New(cst.HorizontalSingle, start, p.pos, elems...)
}

// parseRegularText consumes plain text up to the next special character.
func (p *parser) parseRegularText(mode textMode) *cst.Node {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if strings.IndexByte("\\%#`{}", c) >= 0 ||
			(c == '$' && p.peekAt(1) == '{') ||
			(c == '|' && mode == textListItem) ||
			(c == '*' && mode == textBulletItem) {
			break
		}
		p.pos++
	}
	return cst.New(cst.RegularText, start, p.pos)
}

// parseEmbedding parses "#name;" in inline or block text.
func (p *parser) parseEmbedding(kind cst.Kind) *cst.Node {
	start := p.pos
	p.expect("#")
	var name *cst.Node
	if isUpper(p.peek()) {
		name = p.parseUpperName()
	} else {
		name = p.parseVar()
	}
	p.expect(";")
	return cst.New(kind, start, p.pos, name)
}

// parseBulletList parses "* item ** item ..." starting at the interior of
// the braces.
func (p *parser) parseBulletList(start int) *cst.Node {
	p.skip()
	var items []*cst.Node
	for p.peek() == '*' {
		itemStart := p.pos
		n := 0
		for p.peekAt(n) == '*' {
			n++
		}
		star := cst.New(cst.HorizontalBulletStar, p.pos, p.pos+n)
		p.pos += n
		single := p.parseHorizontalSingle(textBulletItem)
		items = append(items, cst.New(cst.HorizontalBullet, itemStart, single.Span.End, star, single))
	}
	if p.peek() != '}' {
		p.fail(p.pos, "expected \"*\" or \"}\" in itemized text, found %s", p.describe())
	}
	return cst.New(cst.HorizontalBulletList, start, p.pos, items...)
}

// parseHorizontalList parses "| item | item |" starting at the interior of
// the braces.
func (p *parser) parseHorizontalList(start int) *cst.Node {
	p.skip()
	p.expect("|")
	var items []*cst.Node
	for p.lookPast() != '}' {
		items = append(items, p.parseHorizontalSingle(textListItem))
		p.expect("|")
	}
	p.skip()
	return cst.New(cst.HorizontalList, start, p.pos, items...)
}

// parseVerticalBody parses the interior of "<...>" and leaves the cursor on
// the closing angle bracket. It returns nil for a blank interior.
func (p *parser) parseVerticalBody() *cst.Node {
	start := p.pos
	var elems []*cst.Node
loop:
	for {
		p.skip()
		switch c := p.peek(); {
		case c == '>':
			break loop
		case c == '+':
			elems = append(elems, p.parseBlockCmd())
		case c == '#':
			elems = append(elems, p.parseEmbedding(cst.BlockTextEmbedding))
		default:
			p.failHint(p.pos, "block text contains +commands and #embeddings", "unexpected %s in block text", p.describe())
		}
	}
	if strings.TrimSpace(p.src[start:p.pos]) == "" {
		return nil
	}
	return cst.New(cst.Vertical, start, p.pos, elems...)
}

func (p *parser) parseInlineCmd() *cst.Node {
	start := p.pos
	children := []*cst.Node{p.parseCmdName(cst.InlineCmdName)}
	children = append(children, p.parseCmdArgs()...)
	return cst.New(cst.InlineCmd, start, p.pos, children...)
}

func (p *parser) parseBlockCmd() *cst.Node {
	start := p.pos
	children := []*cst.Node{p.parseCmdName(cst.BlockCmdName)}
	children = append(children, p.parseCmdArgs()...)
	return cst.New(cst.BlockCmd, start, p.pos, children...)
}

// parseCmdArgs parses the arguments of an inline or block command.
// Expression arguments come first; once a text argument has been read only
// further text arguments may follow. A command without text arguments is
// terminated by ';', which stays inside the command's span.
func (p *parser) parseCmdArgs() []*cst.Node {
	var args []*cst.Node
	text := false
	for {
		save := p.pos
		p.skip()
		c := p.peek()
		switch {
		case c == '{' || c == '<':
			args = append(args, p.parseCmdTextArg())
			text = true
		case text:
			p.pos = save
			return args
		case c == '(' || c == '[':
			args = append(args, p.parseCmdExprArg())
		case c == '?' && (p.peekAt(1) == ':' || p.peekAt(1) == '*'):
			args = append(args, p.parseCmdExprOption())
		case c == ';':
			p.pos++
			return args
		default:
			p.pos = save
			return args
		}
	}
}

// parseCmdExprArg parses "(e)", "(|...|)" or "[...]".
func (p *parser) parseCmdExprArg() *cst.Node {
	start := p.pos
	var e *cst.Node
	if p.peek() == '[' {
		e = p.parseList()
	} else {
		e = p.parseParen()
	}
	return cst.New(cst.CmdExprArg, start, p.pos, e)
}

// parseCmdExprOption parses "?:(e)" and "?*".
func (p *parser) parseCmdExprOption() *cst.Node {
	start := p.pos
	if p.has("?*") {
		p.pos += 2
		return cst.New(cst.CmdExprOption, start, p.pos)
	}
	p.expect("?:")
	p.skip()
	if c := p.peek(); c != '(' && c != '[' {
		p.fail(p.pos, "expected an argument after \"?:\", found %s", p.describe())
	}
	arg := p.parseCmdExprArg()
	return cst.New(cst.CmdExprOption, start, p.pos, arg)
}

// parseCmdTextArg parses "{...}" or "<...>".
func (p *parser) parseCmdTextArg() *cst.Node {
	start := p.pos
	var body *cst.Node
	if p.peek() == '{' {
		p.pos++
		body = p.parseHorizontalBody()
		p.expect("}")
	} else {
		p.expect("<")
		body = p.parseVerticalBody()
		p.expect(">")
	}
	if body == nil {
		return cst.New(cst.CmdTextArg, start, p.pos)
	}
	return cst.New(cst.CmdTextArg, start, p.pos, body)
}
