package lsp

import (
	"encoding/json"

	"github.com/usagrada/satysfi-formatter/internal/lsp/log"
)

// ServerName is reported to clients in the initialize result.
const ServerName = "satysfi-formatter"

// decode unmarshals request parameters into a T. Missing parameters
// decode as the zero value.
func decode[T any](params json.RawMessage) (T, *Error) {
	var v T
	if len(params) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(params, &v); err != nil {
		return v, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	return v, nil
}

func (s *Server) handleInitialize(params json.RawMessage) (any, *Error) {
	p, rpcErr := decode[InitializeParams](params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	s.rootURI = p.RootURI
	log.Server("Initialize with root: %s", s.rootURI)

	if opts := p.InitializationOptions; opts != nil {
		cfg := s.base
		if opts.RowLength != nil {
			cfg.RowLength = *opts.RowLength
		}
		if opts.IndentUnit != nil {
			cfg.IndentUnit = *opts.IndentUnit
		}
		if opts.CommandArgSpacing != nil {
			cfg.CommandArgSpacing = *opts.CommandArgSpacing
		}
		if err := cfg.Validate(); err != nil {
			return nil, &Error{Code: CodeInvalidParams, Message: "initializationOptions: " + err.Error()}
		}
		s.base = cfg
	}

	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save:      &SaveOptions{IncludeText: true},
			},
			DocumentFormattingProvider: true,
		},
		ServerInfo: &ServerInfo{Name: ServerName},
	}, nil
}

func (s *Server) handleInitialized(json.RawMessage) (any, *Error) {
	s.initialized = true
	return nil, nil
}

func (s *Server) handleShutdown(json.RawMessage) (any, *Error) {
	log.Server("Shutdown requested")
	s.shutdown = true
	return nil, nil
}

func (s *Server) handleExit(json.RawMessage) (any, *Error) {
	s.exited = true
	return nil, nil
}

func (s *Server) handleDidOpen(params json.RawMessage) (any, *Error) {
	p, rpcErr := decode[DidOpenParams](params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	item := p.TextDocument
	log.Server("Opened %s", item.URI)
	s.publishDiagnostics(s.docs.Open(item.URI, item.Text, item.Version))
	return nil, nil
}

// handleDidChange takes the last change, which holds the whole document
// under full synchronization.
func (s *Server) handleDidChange(params json.RawMessage) (any, *Error) {
	p, rpcErr := decode[DidChangeParams](params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if n := len(p.ContentChanges); n > 0 {
		id := p.TextDocument
		s.publishDiagnostics(s.docs.Update(id.URI, p.ContentChanges[n-1].Text, id.Version))
	}
	return nil, nil
}

// handleDidClose forgets the document and clears its diagnostics.
func (s *Server) handleDidClose(params json.RawMessage) (any, *Error) {
	p, rpcErr := decode[DidCloseParams](params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	uri := p.TextDocument.URI
	log.Server("Closed %s", uri)
	s.docs.Close(uri)
	err := s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []Diagnostic{},
	})
	if err != nil {
		log.Server("Clearing diagnostics for %s: %v", uri, err)
	}
	return nil, nil
}

// handleDidSave reparses the saved text when the client sends it.
func (s *Server) handleDidSave(params json.RawMessage) (any, *Error) {
	p, rpcErr := decode[DidSaveParams](params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if p.Text == nil {
		return nil, nil
	}
	if doc := s.docs.Get(p.TextDocument.URI); doc != nil {
		s.publishDiagnostics(s.docs.Update(doc.URI, *p.Text, doc.Version+1))
	}
	return nil, nil
}
