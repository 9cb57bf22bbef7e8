package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorOK    = lipgloss.Color("#2CD7C7")
	colorWarn  = lipgloss.Color("#F4D03F")
	colorError = lipgloss.Color("#E74C3C")
)

// styles colour status lines. They are plain unless w is a terminal.
type styles struct {
	ok, warn, err lipgloss.Style
}

func newStyles(w io.Writer) styles {
	plain := lipgloss.NewStyle()
	st := styles{ok: plain, warn: plain, err: plain}
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return st
	}
	st.ok = lipgloss.NewStyle().Foreground(colorOK)
	st.warn = lipgloss.NewStyle().Foreground(colorWarn)
	st.err = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	return st
}
