// Package cst defines the concrete syntax tree shared by the SATySFi parser
// and the formatter.
//
// A tree is a set of [Node] values that only carry a [Kind], a byte [Span]
// into the original source text, and their children. Leaf text is always
// recovered from the source through the span, so the tree never duplicates
// the document. [Tree] bundles the root with the source text and its
// line-start table.
package cst
