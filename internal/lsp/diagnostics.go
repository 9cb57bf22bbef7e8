package lsp

import "github.com/usagrada/satysfi-formatter/internal/lsp/log"

// diagnostics converts the syntax errors of doc.
func diagnostics(doc *Document) []Diagnostic {
	diags := make([]Diagnostic, 0, len(doc.Errors))
	for _, e := range doc.Errors {
		msg := e.Message
		if e.Hint != "" {
			msg += " (" + e.Hint + ")"
		}
		diags = append(diags, Diagnostic{
			Range:    errorRange(doc.Content, e.Offset),
			Severity: DiagnosticSeverityError,
			Source:   ServerName,
			Message:  msg,
		})
	}
	return diags
}

// publishDiagnostics sends the diagnostics of doc to the client.
func (s *Server) publishDiagnostics(doc *Document) {
	if doc == nil {
		return
	}
	version := doc.Version
	params := PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: diagnostics(doc),
	}
	if err := s.sendNotification("textDocument/publishDiagnostics", params); err != nil {
		log.Server("Error publishing diagnostics: %v", err)
	}
}
