package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/usagrada/satysfi-formatter/internal/lsp"
	"github.com/usagrada/satysfi-formatter/internal/lsp/log"
)

// logEnv names a log file used when --log is not given.
const logEnv = "SATYSFI_FORMATTER_LOG"

func newLSPCmd(s *settings) *cobra.Command {
	var logPath string
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if logPath == "" {
				logPath = os.Getenv(logEnv)
			}
			if logPath != "" {
				f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				log.SetOutput(f)
				defer log.SetOutput(nil)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			base, err := s.resolve(filepath.Join(cwd, "main.saty"))
			if err != nil {
				return err
			}
			return lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), base).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&logPath, "log", "", "append debug logs to this file (default $"+logEnv+")")
	return cmd
}
