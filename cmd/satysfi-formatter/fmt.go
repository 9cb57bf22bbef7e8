package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/usagrada/satysfi-formatter/internal/diff"
	satysfi "github.com/usagrada/satysfi-formatter/pkg/formatter"
)

// fmtOptions are the flags of the format command.
type fmtOptions struct {
	*settings

	write  bool
	output string
	list   bool
	check  bool
	diff   bool
}

// stdout reports whether results go to standard output.
func (o *fmtOptions) stdout() bool {
	return !o.write && o.output == "" && !o.list && !o.check && !o.diff
}

// sourceExts are the extensions picked up from directories.
var sourceExts = []string{".saty", ".satyh", ".satyg"}

func isSource(path string) bool {
	for _, ext := range sourceExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// collectFiles expands the command line paths. A directory contributes its
// SATySFi files, "dir/..." walks dir recursively and a file is taken as is.
func collectFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if strings.HasSuffix(path, "/...") {
			root := strings.TrimSuffix(path, "/...")
			if root == "" {
				root = "."
			}
			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() && p != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				if !d.IsDir() && isSource(p) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isSource(entry.Name()) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}

	return files, nil
}

// result is the outcome of formatting one file.
type result struct {
	satysfi.Result
	path   string
	source string
	err    error
}

func (r result) changed() bool {
	return r.err == nil && r.Changed
}

// formatFile reads and formats one file.
func formatFile(s *settings, path string) result {
	res := result{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.err = fmt.Errorf("reading file: %w", err)
		return res
	}
	res.source = string(data)
	cfg, err := s.resolve(path)
	if err != nil {
		res.err = err
		return res
	}
	res.Result, res.err = satysfi.FromConfig(cfg).FormatWithResult(path, res.source)
	return res
}

// formatAll formats files in parallel. Every file is attempted; failures
// are recorded in its result.
func formatAll(ctx context.Context, s *settings, files []string) ([]result, error) {
	results := make([]result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(s, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runFmt implements the root command.
func runFmt(cmd *cobra.Command, o *fmtOptions, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := o.logger(errOut)
	st := newStyles(errOut)

	if len(args) == 0 {
		return runFmtStdin(cmd, o)
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no SATySFi files found")
	}
	if o.output != "" && len(files) != 1 {
		return fmt.Errorf("--output needs exactly one input file, got %d", len(files))
	}

	results, err := formatAll(cmd.Context(), o.settings, files)
	if err != nil {
		return err
	}

	var failed, unformatted int
	for _, r := range results {
		if r.err != nil {
			reportError(errOut, st, r.path, r.err)
			failed++
			continue
		}
		logger.Debug("formatted", "path", r.path, "changed", r.changed())
		if r.changed() {
			unformatted++
		}
		if err := emit(out, errOut, st, o, r); err != nil {
			reportError(errOut, st, r.path, err)
			failed++
		}
	}

	switch {
	case failed > 0:
		fmt.Fprintln(errOut, st.err.Render(fmt.Sprintf("%d file(s) had errors", failed)))
		return errReported
	case o.check && unformatted > 0:
		fmt.Fprintln(errOut, st.warn.Render(fmt.Sprintf("%d file(s) not formatted", unformatted)))
		return errReported
	}
	return nil
}

// emit delivers one successful result according to the output flags.
func emit(out, errOut io.Writer, st styles, o *fmtOptions, r result) error {
	if o.list && r.changed() {
		fmt.Fprintln(out, r.path)
	}
	if o.check && r.changed() && !o.list {
		fmt.Fprintln(errOut, st.warn.Render(r.path+" is not formatted"))
	}
	if o.diff && r.changed() {
		d, err := diff.Unified(r.path, r.source, r.Content)
		if err != nil {
			return fmt.Errorf("diffing: %w", err)
		}
		out.Write(d)
	}
	if o.write && r.changed() {
		if err := writeFile(r.path, r.Content); err != nil {
			return err
		}
		fmt.Fprintln(errOut, st.ok.Render("Formatted: "+r.path))
	}
	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(r.Content), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if o.stdout() {
		io.WriteString(out, r.Content)
	}
	return nil
}

// writeFile replaces the contents of path, keeping its permissions.
func writeFile(path, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// runFmtStdin formats standard input to standard output, or to --output.
func runFmtStdin(cmd *cobra.Command, o *fmtOptions) error {
	if o.write || o.list {
		return errors.New("--write and --list need file arguments")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := o.resolve(filepath.Join(cwd, "stdin.saty"))
	if err != nil {
		return err
	}
	r := result{path: "<stdin>", source: string(data)}
	r.Result, err = satysfi.FromConfig(cfg).FormatWithResult(r.path, r.source)
	if err != nil {
		reportError(cmd.ErrOrStderr(), newStyles(cmd.ErrOrStderr()), r.path, err)
		return errReported
	}
	if err := emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), newStyles(cmd.ErrOrStderr()), o, r); err != nil {
		return err
	}
	if o.check && r.changed() {
		return errReported
	}
	return nil
}

// reportError prints a failure for path. Syntax errors already carry
// their location.
func reportError(w io.Writer, st styles, path string, err error) {
	var inv *satysfi.InvariantError
	msg := err.Error()
	switch {
	case errors.As(err, &inv):
		msg = path + ": internal error: " + msg
	case !strings.HasPrefix(msg, path+":"):
		msg = path + ": " + msg
	}
	fmt.Fprintln(w, st.err.Render(msg))
}
