package lsp

import (
	"encoding/json"

	"github.com/usagrada/satysfi-formatter/internal/lsp/log"
)

type handlerFunc func(params json.RawMessage) (any, *Error)

// Router dispatches requests by method name.
type Router struct {
	handlers map[string]handlerFunc
}

// NewRouter creates a router serving the methods implemented by server.
func NewRouter(server *Server) *Router {
	return &Router{handlers: map[string]handlerFunc{
		"initialize":  server.handleInitialize,
		"initialized": server.handleInitialized,
		"shutdown":    server.handleShutdown,
		"exit":        server.handleExit,

		"textDocument/didOpen":   server.handleDidOpen,
		"textDocument/didChange": server.handleDidChange,
		"textDocument/didClose":  server.handleDidClose,
		"textDocument/didSave":   server.handleDidSave,

		"textDocument/formatting": server.handleFormatting,
	}}
}

// Route dispatches a request to the matching handler.
func (r *Router) Route(req Request) (any, *Error) {
	h, ok := r.handlers[req.Method]
	if !ok {
		log.Server("Unknown method: %s", req.Method)
		return nil, &Error{Code: CodeMethodNotFound, Message: "method not found: " + req.Method}
	}
	return h(req.Params)
}
