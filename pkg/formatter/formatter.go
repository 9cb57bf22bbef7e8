// Package formatter formats SATySFi source code.
//
// It is the public entry point to the formatter; the command line tool and
// the language server use the same implementation.
package formatter

import (
	"github.com/usagrada/satysfi-formatter/internal/formatter"
	"github.com/usagrada/satysfi-formatter/internal/parser"
)

// SyntaxErrors is returned when the source does not parse. Each entry
// carries the line and column of a problem.
type SyntaxErrors = parser.ErrorList

// SyntaxError is a single parse error.
type SyntaxError = parser.Error

// InvariantError is returned when a parsed document cannot be rendered
// faithfully. The document is left unformatted.
type InvariantError = formatter.InvariantError

// Formatter formats SATySFi source code.
type Formatter struct {
	// RowLength is the width above which text arguments are broken onto
	// their own lines (default: 80).
	RowLength int
	// IndentUnit is the number of spaces per nesting level (default: 4).
	IndentUnit int
	// CommandArgSpacing pads command text arguments with a space
	// (default: true).
	CommandArgSpacing bool
}

// New creates a new Formatter with default settings.
func New() *Formatter {
	return FromConfig(formatter.DefaultConfig())
}

func (f *Formatter) config() formatter.Config {
	return formatter.Config{
		RowLength:         f.RowLength,
		IndentUnit:        f.IndentUnit,
		CommandArgSpacing: f.CommandArgSpacing,
	}
}

// Format parses and reformats source. On error the source is returned
// unchanged together with a *SyntaxErrors or *InvariantError.
func (f *Formatter) Format(filename, source string) (string, error) {
	return formatter.Format(filename, source, f.config())
}

// Result is the outcome of formatting one source.
type Result struct {
	// Content is the formatted source. It is the input unchanged when
	// formatting fails.
	Content string
	// Changed reports whether Content differs from the input.
	Changed bool
}

// FormatWithResult formats source like Format and records whether the
// layout changed. The command line tool uses it to decide which files to
// list, diff or rewrite.
func (f *Formatter) FormatWithResult(filename, source string) (Result, error) {
	formatted, err := f.Format(filename, source)
	if err != nil {
		return Result{Content: source}, err
	}
	return Result{Content: formatted, Changed: formatted != source}, nil
}

// FromConfig returns a Formatter with the settings of a resolved
// configuration.
func FromConfig(cfg formatter.Config) *Formatter {
	return &Formatter{
		RowLength:         cfg.RowLength,
		IndentUnit:        cfg.IndentUnit,
		CommandArgSpacing: cfg.CommandArgSpacing,
	}
}
