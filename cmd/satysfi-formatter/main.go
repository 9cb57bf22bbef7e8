// Command satysfi-formatter formats SATySFi documents and libraries.
//
// Usage:
//
//	satysfi-formatter [flags] [path...]   Format files (stdout by default)
//	satysfi-formatter tree FILE           Print the syntax tree of a file
//	satysfi-formatter watch [dir...]      Reformat files as they are saved
//	satysfi-formatter lsp                 Start the language server on stdio
//	satysfi-formatter version             Print version information
//
// Examples:
//
//	satysfi-formatter -w ./...            Format every file below the current directory
//	satysfi-formatter --check main.saty   Exit non-zero if main.saty needs formatting
//	satysfi-formatter -d -i 2 lib.satyh   Show the diff for a two-space indent
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
