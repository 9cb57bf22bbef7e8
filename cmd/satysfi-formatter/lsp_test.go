package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestLSPCommand(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "lsp.log")
	in := frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`) +
		frame(`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`)

	out, _, err := execute(t, in, "lsp", "--log", logPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"documentFormattingProvider":true`)
	assert.Contains(t, out, `"name":"satysfi-formatter"`)
	assert.Equal(t, 2, strings.Count(out, "Content-Length:"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=server")
}
