package formatter

import (
	"fmt"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// InvariantError reports an internal inconsistency between the tree and
// the formatter, such as a comment no node could hold or a node kind
// without a rendering rule. The document is left unformatted.
type InvariantError struct {
	Stage   string // "attach" or "render"
	Kind    cst.Kind
	Span    cst.Span
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s (%s at %s)", e.Stage, e.Message, e.Kind, e.Span)
}

// renderError is raised inside the printer and converted to an
// InvariantError at the Format boundary.
type renderError struct {
	kind cst.Kind
	span cst.Span
}
