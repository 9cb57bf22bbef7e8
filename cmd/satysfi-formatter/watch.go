package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/usagrada/satysfi-formatter/internal/parser"
)

// debounce is how long a file must stay quiet before it is reformatted.
// Editors often write a file in several steps.
const debounce = 100 * time.Millisecond

func newWatchCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Reformat SATySFi files in place whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			w, err := newWatcher(s, s.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer w.Close()
			for _, dir := range args {
				if err := w.addTree(dir); err != nil {
					return err
				}
			}
			return w.run(cmd.Context())
		},
	}
}

// watcher reformats files below a set of directories as they are written.
type watcher struct {
	s      *settings
	log    *slog.Logger
	fsw    *fsnotify.Watcher
	mu     sync.Mutex
	timers map[string]*time.Timer

	// formatted is signalled after each reformat attempt; tests use it.
	formatted chan string
}

func newWatcher(s *settings, logger *slog.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &watcher{
		s:      s,
		log:    logger,
		fsw:    fsw,
		timers: make(map[string]*time.Timer),
	}, nil
}

// addTree watches root and every non-hidden directory below it.
func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.log.Debug("watching", "dir", path)
		return nil
	})
}

// run handles events until ctx is done.
func (w *watcher) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}

func (w *watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("watch failed", "dir", ev.Name, "err", err)
			}
			return
		}
	}
	if !isSource(ev.Name) || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[ev.Name]; ok {
		t.Stop()
	}
	path := ev.Name
	w.timers[path] = time.AfterFunc(debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.reformat(path)
	})
}

// reformat rewrites path when its layout differs. Syntax errors are logged
// and the file is left alone.
func (w *watcher) reformat(path string) {
	defer func() {
		if w.formatted != nil {
			w.formatted <- path
		}
	}()

	r := formatFile(w.s, path)
	var syntax *parser.ErrorList
	switch {
	case errors.As(r.err, &syntax):
		w.log.Info("not formatted", "path", path, "err", syntax.First())
		return
	case r.err != nil:
		w.log.Warn("format failed", "path", path, "err", r.err)
		return
	case !r.changed():
		return
	}
	if err := writeFile(path, r.Content); err != nil {
		w.log.Warn("write failed", "path", path, "err", err)
		return
	}
	w.log.Info("formatted", "path", path)
}

// Close stops watching and cancels pending reformats.
func (w *watcher) Close() error {
	w.mu.Lock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
