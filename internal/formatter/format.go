package formatter

import (
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
	"github.com/usagrada/satysfi-formatter/internal/parser"
)

// Format parses src and returns it in canonical layout. When src does not
// parse, the source is returned unchanged together with the parser's
// *parser.ErrorList. An *InvariantError means the tree could not be
// rendered faithfully; the source is returned unchanged then as well.
func Format(filename, src string, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return src, err
	}
	tree, err := parser.Parse(filename, src)
	if err != nil {
		return src, err
	}
	out, err := FormatTree(tree, cfg)
	if err != nil {
		return src, err
	}
	return out, nil
}

// FormatTree renders an already parsed tree. The output ends with exactly
// one newline.
func FormatTree(tree *cst.Tree, cfg Config) (out string, err error) {
	root, err := AttachComments(tree.Root, RecoverComments(tree))
	if err != nil {
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(renderError)
			if !ok {
				panic(r)
			}
			out, err = "", &InvariantError{
				Stage:   "render",
				Kind:    re.kind,
				Span:    re.span,
				Message: "no rendering rule for node kind",
			}
		}
	}()
	body := newPrinter(tree, cfg).render(root, 0)
	return strings.TrimRight(body, " \t\n") + "\n", nil
}
