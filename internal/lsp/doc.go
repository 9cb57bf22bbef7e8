// Package lsp implements a Language Server Protocol server for SATySFi
// documents.
//
// The server speaks JSON-RPC 2.0 over stdio, keeps the open documents
// parsed, publishes their syntax errors as diagnostics and answers
// textDocument/formatting with the formatter's output.
package lsp
