package formatter

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// Comment is a % comment recovered from the source text. Text is the
// spelling the printer writes for the comment node covering Span.
type Comment struct {
	Text string
	Span cst.Span // from the % to the end of its line, newline included
}

// headerDirectives introduce lines whose text is a package name, so a %
// on them is not a comment.
var headerDirectives = []string{"@require:", "@import:"}

// RecoverComments returns the comments of t in source order, at most one
// per line. A % starts a comment unless it is preceded by an odd number of
// backslashes or sits inside a backquoted string literal.
func RecoverComments(t *cst.Tree) []Comment {
	var comments []Comment
	quote := 0 // length of the open backquote run, 0 outside strings
	for i := 1; i < len(t.Lines); i++ {
		start, end := t.Lines[i-1], t.Lines[i]
		line := t.Text[start:end]
		if isHeaderLine(line) {
			continue
		}
		var idx int
		idx, quote = commentStart(line, quote)
		if idx < 0 {
			continue
		}
		span := cst.Span{Start: start + idx, End: end}
		comments = append(comments, Comment{Text: commentText(t.Text, span), Span: span})
	}
	return comments
}

func isHeaderLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, d := range headerDirectives {
		if strings.HasPrefix(trimmed, d) {
			return true
		}
	}
	return false
}

// commentStart returns the offset of the first comment-introducing % in
// line, or -1, together with the string state at the end of the scan.
func commentStart(line string, quote int) (int, int) {
	backslashes := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\':
			backslashes++
			continue
		case c == '`' && backslashes%2 == 0:
			n := 1
			for i+n < len(line) && line[i+n] == '`' {
				n++
			}
			switch {
			case quote == 0:
				quote = n
			case n == quote:
				quote = 0
			}
			i += n - 1
		case c == '%' && quote == 0 && backslashes%2 == 0:
			return i, quote
		}
		backslashes = 0
	}
	return -1, quote
}

// commentText is the printed form of the comment at span in src.
func commentText(src string, span cst.Span) string {
	return NormalizeComment(src[span.Start:span.End])
}

// NormalizeComment puts a single space after the % of a comment. Comments
// whose body is empty, already starts with whitespace, or starts with
// another % keep their original spelling. Trailing whitespace and the line
// terminator are dropped.
func NormalizeComment(raw string) string {
	s := strings.TrimRight(raw, " \t\r\n")
	rest := strings.TrimPrefix(s, "%")
	if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '%' {
		return s
	}
	return "% " + strings.TrimSpace(rest)
}
