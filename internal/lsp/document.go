package lsp

import (
	"errors"
	"net/url"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/usagrada/satysfi-formatter/internal/cst"
	"github.com/usagrada/satysfi-formatter/internal/parser"
)

// Document is a snapshot of an open file. Snapshots are never modified;
// an edit stores a new one.
type Document struct {
	URI     string
	Content string
	Version int
	Tree    *cst.Tree       // nil when Content does not parse
	Errors  []*parser.Error // syntax errors of Content
}

// newDocument parses content into a snapshot.
func newDocument(uri, content string, version int) *Document {
	doc := &Document{URI: uri, Content: content, Version: version}
	tree, err := parser.Parse(uriToPath(uri), content)
	var list *parser.ErrorList
	switch {
	case errors.As(err, &list):
		doc.Errors = list.Errors()
	case err == nil:
		doc.Tree = tree
	}
	return doc
}

// DocumentStore holds the latest snapshot of every open document.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open parses and stores a newly opened document.
func (ds *DocumentStore) Open(uri, content string, version int) *Document {
	return ds.Update(uri, content, version)
}

// Update parses content and makes it the current snapshot for uri.
// Parsing happens outside the lock.
func (ds *DocumentStore) Update(uri, content string, version int) *Document {
	doc := newDocument(uri, content, version)
	ds.mu.Lock()
	ds.docs[uri] = doc
	ds.mu.Unlock()
	return doc
}

func (ds *DocumentStore) Close(uri string) {
	ds.mu.Lock()
	delete(ds.docs, uri)
	ds.mu.Unlock()
}

// Get returns the current snapshot for uri, or nil.
func (ds *DocumentStore) Get(uri string) *Document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return u.Path
}

// Position is a zero-based line and UTF-16 character offset.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range represents a range in a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// OffsetToPosition converts a byte offset in content to a Position.
func OffsetToPosition(content string, offset int) Position {
	offset = min(max(offset, 0), len(content))
	var pos Position
	for _, r := range content[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Character = 0
			continue
		}
		pos.Character += utf16Len(r)
	}
	return pos
}

// EndPosition returns the Position just past the last character of content.
func EndPosition(content string) Position {
	return OffsetToPosition(content, len(content))
}

// errorRange covers the word at offset, or a single character when there
// is none.
func errorRange(content string, offset int) Range {
	offset = min(max(offset, 0), len(content))
	end := offset
	for end < len(content) && !strings.ContainsRune(" \t\r\n", rune(content[end])) {
		_, size := utf8.DecodeRuneInString(content[end:])
		end += size
	}
	if end == offset && end < len(content) && content[end] != '\n' {
		end++
	}
	return Range{Start: OffsetToPosition(content, offset), End: OffsetToPosition(content, end)}
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
