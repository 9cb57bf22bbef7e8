package lsp

import (
	"encoding/json"
	"time"

	"github.com/usagrada/satysfi-formatter/internal/formatter"
	"github.com/usagrada/satysfi-formatter/internal/lsp/log"
)

// config returns the layout settings for a formatting request. A space
// indentation width from the client replaces the indent unit.
func (s *Server) config(opts FormattingOptions) formatter.Config {
	cfg := s.base
	if opts.InsertSpaces && opts.TabSize > 0 {
		cfg.IndentUnit = opts.TabSize
	}
	return cfg
}

// handleFormatting handles textDocument/formatting requests. The whole
// document is replaced by one edit; a document that does not parse gets
// no edits.
func (s *Server) handleFormatting(params json.RawMessage) (any, *Error) {
	p, rpcErr := decode[DocumentFormattingParams](params)
	if rpcErr != nil {
		return nil, rpcErr
	}

	doc := s.docs.Get(p.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	if doc.Tree == nil {
		log.Format("Not formatting %s: %d syntax error(s)", doc.URI, len(doc.Errors))
		return []TextEdit{}, nil
	}

	start := time.Now()
	formatted, err := formatter.FormatTree(doc.Tree, s.config(p.Options))
	if err != nil {
		log.Format("Formatting %s failed: %v", doc.URI, err)
		return []TextEdit{}, nil
	}
	log.Format("Formatted %s in %s", doc.URI, time.Since(start))

	if formatted == doc.Content {
		return []TextEdit{}, nil
	}
	return []TextEdit{{
		Range:   Range{End: EndPosition(doc.Content)},
		NewText: formatted,
	}}, nil
}
