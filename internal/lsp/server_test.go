package lsp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usagrada/satysfi-formatter/internal/formatter"
)

// mockReadWriter provides a mock for testing LSP communication.
type mockReadWriter struct {
	input  *bytes.Buffer
	output *bytes.Buffer
}

func newMockReadWriter() *mockReadWriter {
	return &mockReadWriter{
		input:  new(bytes.Buffer),
		output: new(bytes.Buffer),
	}
}

// writeRequest writes a JSON-RPC request to the mock input. A nil id makes
// it a notification.
func (m *mockReadWriter) writeRequest(t *testing.T, id any, method string, params any) {
	t.Helper()
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
	}
	if id != nil {
		req["id"] = id
	}
	if params != nil {
		req["params"] = params
	}
	content, err := json.Marshal(req)
	require.NoError(t, err)
	fmt.Fprintf(m.input, "Content-Length: %d\r\n\r\n", len(content))
	m.input.Write(content)
}

// message is any JSON-RPC message read back from the server.
type message struct {
	ID     any             `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

// readMessages decodes every message the server wrote.
func (m *mockReadWriter) readMessages(t *testing.T) []message {
	t.Helper()
	var msgs []message
	for {
		var contentLength int
		for {
			line, err := m.output.ReadString('\n')
			if err == io.EOF {
				return msgs
			}
			require.NoError(t, err)
			line = strings.TrimSpace(line)
			if line == "" {
				break
			}
			if v, ok := strings.CutPrefix(line, "Content-Length:"); ok {
				_, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &contentLength)
				require.NoError(t, err)
			}
		}
		content := make([]byte, contentLength)
		_, err := io.ReadFull(m.output, content)
		require.NoError(t, err)
		var msg message
		require.NoError(t, json.Unmarshal(content, &msg))
		msgs = append(msgs, msg)
	}
}

// run serves everything written to the mock so far followed by shutdown
// and exit, and returns the messages the server wrote.
func (m *mockReadWriter) run(t *testing.T) []message {
	t.Helper()
	m.writeRequest(t, "shutdown", "shutdown", nil)
	m.writeRequest(t, nil, "exit", nil)
	s := NewServer(m, m, formatter.DefaultConfig())
	require.NoError(t, s.Run(context.Background()))
	return m.readMessages(t)
}

func (m *mockReadWriter) Read(p []byte) (int, error)  { return m.input.Read(p) }
func (m *mockReadWriter) Write(p []byte) (int, error) { return m.output.Write(p) }

func openParams(uri, text string) DidOpenParams {
	return DidOpenParams{TextDocument: TextDocumentItem{URI: uri, LanguageID: "satysfi", Version: 1, Text: text}}
}

func TestServerShutdownThenExit(t *testing.T) {
	mock := newMockReadWriter()
	mock.writeRequest(t, 1, "shutdown", nil)
	mock.writeRequest(t, 2, "textDocument/formatting", DocumentFormattingParams{
		TextDocument: TextDocumentIdentifier{URI: "file:///a.saty"},
	})
	mock.writeRequest(t, nil, "exit", nil)
	mock.writeRequest(t, 3, "initialize", InitializeParams{})

	s := NewServer(mock, mock, formatter.DefaultConfig())
	require.NoError(t, s.Run(context.Background()))

	msgs := mock.readMessages(t)
	require.Len(t, msgs, 2)
	assert.EqualValues(t, 1, msgs[0].ID)
	assert.Nil(t, msgs[0].Error)
	assert.EqualValues(t, 2, msgs[1].ID)
	require.NotNil(t, msgs[1].Error)
	assert.Equal(t, CodeInvalidRequest, msgs[1].Error.Code)
}

func TestServerInitialize(t *testing.T) {
	mock := newMockReadWriter()
	mock.writeRequest(t, 1, "initialize", InitializeParams{RootURI: "file:///work"})
	msgs := mock.run(t)
	require.Len(t, msgs, 2)

	var result InitializeResult
	require.NoError(t, json.Unmarshal(msgs[0].Result, &result))
	assert.True(t, result.Capabilities.DocumentFormattingProvider)
	require.NotNil(t, result.Capabilities.TextDocumentSync)
	assert.Equal(t, TextDocumentSyncKindFull, result.Capabilities.TextDocumentSync.Change)
	assert.Equal(t, ServerName, result.ServerInfo.Name)
}

func TestServerDiagnostics(t *testing.T) {
	type tc struct {
		text  string
		count int
		rng   Range
	}

	tests := map[string]tc{
		"valid document": {
			text:  "let x = 1\n",
			count: 0,
		},
		"missing body": {
			text:  "let x =\n",
			count: 1,
			rng:   Range{Start: Position{Line: 1}, End: Position{Line: 1}},
		},
		"stray paren": {
			text:  "let x = 1\nin\n) rest",
			count: 1,
			rng:   Range{Start: Position{Line: 2}, End: Position{Line: 2, Character: 1}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mock := newMockReadWriter()
			mock.writeRequest(t, nil, "textDocument/didOpen", openParams("file:///doc.saty", tt.text))
			msgs := mock.run(t)
			require.Len(t, msgs, 2)
			assert.Equal(t, "textDocument/publishDiagnostics", msgs[0].Method)

			var params PublishDiagnosticsParams
			require.NoError(t, json.Unmarshal(msgs[0].Params, &params))
			assert.Equal(t, "file:///doc.saty", params.URI)
			require.Len(t, params.Diagnostics, tt.count)
			if tt.count > 0 {
				d := params.Diagnostics[0]
				assert.Equal(t, tt.rng, d.Range)
				assert.Equal(t, DiagnosticSeverityError, d.Severity)
				assert.NotEmpty(t, d.Message)
			}
		})
	}
}

func TestServerFormatting(t *testing.T) {
	type tc struct {
		text    string
		options FormattingOptions
		want    []TextEdit
	}

	tests := map[string]tc{
		"reformats whole document": {
			text:    "let x=1",
			options: FormattingOptions{TabSize: 4, InsertSpaces: true},
			want: []TextEdit{{
				Range:   Range{End: Position{Line: 0, Character: 7}},
				NewText: "let x = 1\n",
			}},
		},
		"tab size sets indent": {
			text:    "module M = struct\nlet x = 1\nend\n",
			options: FormattingOptions{TabSize: 2, InsertSpaces: true},
			want: []TextEdit{{
				Range:   Range{End: Position{Line: 3, Character: 0}},
				NewText: "module M = struct\n  let x = 1\nend\n",
			}},
		},
		"already formatted": {
			text:    "let x = 1\n",
			options: FormattingOptions{TabSize: 4, InsertSpaces: true},
			want:    []TextEdit{},
		},
		"syntax error yields no edits": {
			text:    "let x =\n",
			options: FormattingOptions{TabSize: 4, InsertSpaces: true},
			want:    []TextEdit{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mock := newMockReadWriter()
			mock.writeRequest(t, nil, "textDocument/didOpen", openParams("file:///doc.saty", tt.text))
			mock.writeRequest(t, 7, "textDocument/formatting", DocumentFormattingParams{
				TextDocument: TextDocumentIdentifier{URI: "file:///doc.saty"},
				Options:      tt.options,
			})
			msgs := mock.run(t)
			require.Len(t, msgs, 3)

			var edits []TextEdit
			require.NoError(t, json.Unmarshal(msgs[1].Result, &edits))
			assert.Equal(t, tt.want, edits)
		})
	}
}

func TestServerDocumentLifecycle(t *testing.T) {
	mock := newMockReadWriter()
	uri := "file:///doc.saty"
	mock.writeRequest(t, nil, "textDocument/didOpen", openParams(uri, "let x =\n"))
	mock.writeRequest(t, nil, "textDocument/didChange", DidChangeParams{
		TextDocument:   VersionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: "let x = 1\n"}},
	})
	mock.writeRequest(t, nil, "textDocument/didClose", DidCloseParams{TextDocument: TextDocumentIdentifier{URI: uri}})
	msgs := mock.run(t)
	require.Len(t, msgs, 4)

	counts := make([]int, 3)
	for i := range counts {
		var params PublishDiagnosticsParams
		require.NoError(t, json.Unmarshal(msgs[i].Params, &params))
		counts[i] = len(params.Diagnostics)
	}
	assert.Equal(t, []int{1, 0, 0}, counts)
}

func TestServerUnknownMethod(t *testing.T) {
	mock := newMockReadWriter()
	mock.writeRequest(t, 1, "textDocument/hover", map[string]any{})
	msgs := mock.run(t)
	require.Len(t, msgs, 2)
	require.NotNil(t, msgs[0].Error)
	assert.Equal(t, CodeMethodNotFound, msgs[0].Error.Code)
}

func TestOffsetToPosition(t *testing.T) {
	type tc struct {
		content string
		offset  int
		want    Position
	}

	tests := map[string]tc{
		"start":             {content: "abc", offset: 0, want: Position{}},
		"second line":       {content: "ab\ncd", offset: 4, want: Position{Line: 1, Character: 1}},
		"multibyte rune":    {content: "あい", offset: 3, want: Position{Character: 1}},
		"surrogate pair":    {content: "😀x", offset: 4, want: Position{Character: 2}},
		"offset past end":   {content: "ab", offset: 10, want: Position{Character: 2}},
		"negative offset":   {content: "ab", offset: -1, want: Position{}},
		"after final break": {content: "a\n", offset: 2, want: Position{Line: 1}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, OffsetToPosition(tt.content, tt.offset))
		})
	}
}

func intPtr(v int) *int { return &v }

func TestServerInitializationOptions(t *testing.T) {
	type tc struct {
		opts     *LayoutOptions
		wantCode int
		wantText string
	}

	tests := map[string]tc{
		"defaults": {
			wantText: "module M = struct\n    let x = 1\nend\n",
		},
		"indent unit": {
			opts:     &LayoutOptions{IndentUnit: intPtr(2)},
			wantText: "module M = struct\n  let x = 1\nend\n",
		},
		"invalid row length": {
			opts:     &LayoutOptions{RowLength: intPtr(0)},
			wantCode: CodeInvalidParams,
			wantText: "module M = struct\n    let x = 1\nend\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mock := newMockReadWriter()
			mock.writeRequest(t, 1, "initialize", InitializeParams{InitializationOptions: tt.opts})
			mock.writeRequest(t, nil, "textDocument/didOpen", openParams("file:///m.satyh", "module M = struct\nlet x = 1\nend\n"))
			mock.writeRequest(t, 2, "textDocument/formatting", DocumentFormattingParams{
				TextDocument: TextDocumentIdentifier{URI: "file:///m.satyh"},
			})
			msgs := mock.run(t)
			require.Len(t, msgs, 4)

			if tt.wantCode != 0 {
				require.NotNil(t, msgs[0].Error)
				assert.Equal(t, tt.wantCode, msgs[0].Error.Code)
			} else {
				assert.Nil(t, msgs[0].Error)
			}

			var edits []TextEdit
			require.NoError(t, json.Unmarshal(msgs[2].Result, &edits))
			require.Len(t, edits, 1)
			assert.Equal(t, tt.wantText, edits[0].NewText)
		})
	}
}
