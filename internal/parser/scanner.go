package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// parser holds the cursor state for one parse.
type parser struct {
	filename string
	src      string
	pos      int // byte offset of the next unread character
	lines    []int
	errors   *ErrorList
}

// bailout is raised by fail and recovered in Parse.
type bailout struct{}

func newParser(filename, src string) *parser {
	return &parser{
		filename: filename,
		src:      src,
		lines:    cst.LineStarts(src),
		errors:   NewErrorList(),
	}
}

// fail records an error at offset and aborts the parse.
func (p *parser) fail(offset int, format string, args ...any) {
	err := NewErrorf(cst.PositionOf(p.filename, p.src, p.lines, offset), format, args...)
	err.Offset = offset
	p.errors.Add(err)
	panic(bailout{})
}

// failHint is fail with a hint attached.
func (p *parser) failHint(offset int, hint, format string, args ...any) {
	err := NewErrorf(cst.PositionOf(p.filename, p.src, p.lines, offset), format, args...)
	err.Offset = offset
	err.Hint = hint
	p.errors.Add(err)
	panic(bailout{})
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

// peek returns the byte at the cursor, or 0 at end of input.
func (p *parser) peek() byte {
	return p.peekAt(0)
}

// peekAt returns the byte n positions after the cursor, or 0 past the end.
func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.src) {
		return 0
	}
	return p.src[p.pos+n]
}

// has reports whether the unread input starts with s.
func (p *parser) has(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

// describe returns a printable form of the character at the cursor.
func (p *parser) describe() string {
	if p.eof() {
		return "end of file"
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return fmt.Sprintf("%q", r)
}

// expect consumes s or fails.
func (p *parser) expect(s string) {
	if !p.has(s) {
		p.fail(p.pos, "expected %q, found %s", s, p.describe())
	}
	p.pos += len(s)
}

// skip consumes program-mode whitespace and % comments.
func (p *parser) skip() {
	for !p.eof() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.pos++
		case c == '%':
			p.skipComment()
		default:
			return
		}
	}
}

// skipComment consumes a comment up to and including its newline.
func (p *parser) skipComment() {
	if i := strings.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
		p.pos += i + 1
		return
	}
	p.pos = len(p.src)
}

// skipHSpace consumes spaces and tabs only.
func (p *parser) skipHSpace() {
	for c := p.peek(); c == ' ' || c == '\t'; c = p.peek() {
		p.pos++
	}
}

// lookPast returns the first byte after any whitespace and comments
// without moving the cursor.
func (p *parser) lookPast() byte {
	save := p.pos
	p.skip()
	c := p.peek()
	p.pos = save
	return c
}

// advanceRune consumes one UTF-8 encoded character.
func (p *parser) advanceRune() {
	_, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlnum(c byte) bool { return isLower(c) || isUpper(c) || isDigit(c) }
func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// wordLen returns the length of the identifier starting at offset, or 0.
// Identifiers may contain hyphens, but a hyphen only continues an
// identifier when an alphanumeric character follows it, so that "x->y"
// reads as "x".
func (p *parser) wordLen(offset int, first func(byte) bool) int {
	if offset >= len(p.src) || !first(p.src[offset]) {
		return 0
	}
	i := offset + 1
	for i < len(p.src) {
		c := p.src[i]
		switch {
		case isAlnum(c) || c == '_':
			i++
		case c == '-' && i+1 < len(p.src) && isAlnum(p.src[i+1]):
			i++
		default:
			return i - offset
		}
	}
	return i - offset
}

// peekWord returns the lowercase identifier at the cursor without consuming it.
func (p *parser) peekWord() string {
	n := p.wordLen(p.pos, isLower)
	return p.src[p.pos : p.pos+n]
}

// peekKeyword returns the reserved word at the cursor, or "".
func (p *parser) peekKeyword() string {
	if w := p.peekWord(); reserved[w] {
		return w
	}
	return ""
}

// acceptKeyword consumes kw if it is the next word.
func (p *parser) acceptKeyword(kw string) bool {
	if p.peekWord() != kw {
		return false
	}
	p.pos += len(kw)
	return true
}

// expectKeyword consumes kw or fails.
func (p *parser) expectKeyword(kw string) {
	if !p.acceptKeyword(kw) {
		p.fail(p.pos, "expected %q, found %s", kw, p.describe())
	}
}

// reserved holds the words that can never be variable names.
var reserved = map[string]bool{
	"and": true, "as": true, "block-cmd": true, "command": true,
	"constraint": true, "direct": true, "do": true, "else": true,
	"end": true, "false": true, "fun": true, "if": true, "in": true,
	"inline-cmd": true, "let": true, "let-block": true, "let-inline": true,
	"let-math": true, "let-mutable": true, "let-rec": true, "match": true,
	"math-cmd": true, "mod": true, "module": true, "not": true, "of": true,
	"open": true, "sig": true, "struct": true, "then": true, "true": true,
	"type": true, "val": true, "when": true, "while": true, "with": true,
}
