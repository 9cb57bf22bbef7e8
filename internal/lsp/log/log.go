// Package log provides centralized logging for the language server.
//
// Logging is off until SetOutput is called, since stdout carries the
// protocol and the client owns stderr.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

var (
	logger *slog.Logger
	mu     sync.Mutex
)

// SetOutput sends log records to w as text. Pass nil to disable logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		logger = nil
		return
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func emit(component, format string, args ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return
	}
	l.Debug(fmt.Sprintf(format, args...), "component", component)
}

// Server writes a server log message.
func Server(format string, args ...any) {
	emit("server", format, args...)
}

// Format writes a formatting log message.
func Format(format string, args ...any) {
	emit("format", format, args...)
}

// Enabled returns true if logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil
}
