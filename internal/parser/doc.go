// Package parser builds a concrete syntax tree from SATySFi source.
//
// The parser is scannerless: it walks the source with a byte cursor and
// switches between program, horizontal, vertical and math modes as the
// delimiters dictate. Comments are treated as whitespace and never appear in
// the tree; the formatter recovers them from the raw text. Every node's span
// covers exactly the text of the construct, without surrounding whitespace,
// except for the bodies of {...}, <...>, '<...> and ${...}, which span the
// whole interior of their delimiters.
package parser
