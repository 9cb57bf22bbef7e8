package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/usagrada/satysfi-formatter/internal/config"
	"github.com/usagrada/satysfi-formatter/internal/formatter"
)

// errReported is returned when the failure has already been described to
// the user.
var errReported = errors.New("reported")

// settings are the layout flags shared by all subcommands.
type settings struct {
	configPath string
	indent     int
	rowLength  int
	cspace     bool
	verbose    bool

	flags interface{ Changed(string) bool }
}

// resolve returns the layout for the file at path: defaults, then the
// config file, then any flags given on the command line.
func (s *settings) resolve(path string) (formatter.Config, error) {
	cfg, err := config.ForFile(path, s.configPath)
	if err != nil {
		return cfg, err
	}
	if s.flags.Changed("indent-space") {
		cfg.IndentUnit = s.indent
	}
	if s.flags.Changed("row-length") {
		cfg.RowLength = s.rowLength
	}
	if s.flags.Changed("cspace") {
		cfg.CommandArgSpacing = s.cspace
	}
	return cfg, cfg.Validate()
}

// logger returns a text logger on w at debug level when verbose.
func (s *settings) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	opts := &fmtOptions{settings: s}

	cmd := &cobra.Command{
		Use:   "satysfi-formatter [flags] [path...]",
		Short: "Format SATySFi source files",
		Long: `satysfi-formatter rewrites SATySFi documents (.saty) and libraries
(.satyh, .satyg) in a canonical layout, keeping every comment.

Paths may be files, directories (their SATySFi files) or dir/... for a
recursive walk. With no path the source is read from standard input.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			s.flags = cmd.Flags()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&s.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	pf.IntVarP(&s.indent, "indent-space", "i", 4, "spaces per indentation level")
	pf.IntVar(&s.rowLength, "row-length", 80, "row width above which text arguments are broken")
	pf.BoolVar(&s.cspace, "cspace", true, "put a space between a command and its text arguments")
	pf.BoolVarP(&s.verbose, "verbose", "v", false, "verbose logging")

	f := cmd.Flags()
	f.BoolVarP(&opts.write, "write", "w", false, "write the result back to the source file")
	f.StringVarP(&opts.output, "output", "o", "", "write the result to this file (single input only)")
	f.BoolVarP(&opts.list, "list", "l", false, "list files whose formatting differs")
	f.BoolVar(&opts.check, "check", false, "exit with an error if any file needs formatting")
	f.BoolVarP(&opts.diff, "diff", "d", false, "print a unified diff instead of the result")

	cmd.AddCommand(
		newTreeCmd(),
		newWatchCmd(s),
		newLSPCmd(s),
		newVersionCmd(),
	)
	return cmd
}
