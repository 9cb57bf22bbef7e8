package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// Error is a syntax error at a source location.
type Error struct {
	Pos     cst.Position
	Offset  int    // byte offset of Pos, for editors that need ranges
	Message string
	Hint    string // optional
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: error: %s", e.Pos, e.Message)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// NewErrorf returns an Error at pos with a formatted message.
func NewErrorf(pos cst.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ErrorList is the set of errors from one parse, in the order found.
type ErrorList struct {
	list []*Error
}

func NewErrorList() *ErrorList { return &ErrorList{} }

func (el *ErrorList) Add(err *Error) { el.list = append(el.list, err) }

func (el *ErrorList) Len() int { return len(el.list) }

func (el *ErrorList) HasErrors() bool { return len(el.list) > 0 }

// Errors returns a copy of the collected errors.
func (el *ErrorList) Errors() []*Error { return slices.Clone(el.list) }

// First returns the earliest error, or nil.
func (el *ErrorList) First() *Error {
	if len(el.list) == 0 {
		return nil
	}
	return el.list[0]
}

// Error lists every error, one per line.
func (el *ErrorList) Error() string {
	msgs := make([]string, len(el.list))
	for i, e := range el.list {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (el *ErrorList) Unwrap() []error {
	errs := make([]error, len(el.list))
	for i, e := range el.list {
		errs[i] = e
	}
	return errs
}

// Err returns el as an error, or nil when it is empty.
func (el *ErrorList) Err() error {
	if el.HasErrors() {
		return el
	}
	return nil
}
