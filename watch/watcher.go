// Package watch re-runs the linter whenever a model document changes.
package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/semlint/config"
	"github.com/c360studio/semlint/runner"
)

// Watcher watches the directory tree under root and triggers a lint
// run after changes to .json files settle for the debounce delay.
type Watcher struct {
	cfg      config.WatchConfig
	root     string
	runner   *runner.Runner
	out      io.Writer
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	excludes map[string]bool

	pendingMu sync.Mutex
	pending   bool
}

// New creates a watcher rooted at root. Lint output goes to out.
func New(cfg config.WatchConfig, root string, r *runner.Runner, out io.Writer, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	excludes := make(map[string]bool)
	for _, dir := range cfg.ExcludeDirs {
		excludes[dir] = true
	}

	return &Watcher{
		cfg:      cfg,
		root:     root,
		runner:   r,
		out:      out,
		logger:   logger,
		watcher:  fsw,
		excludes: excludes,
	}, nil
}

// Run lints once, then blocks re-linting on changes until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	w.logger.Info("Watching for model changes",
		"root", w.root,
		"debounce", w.cfg.DebounceDelay)

	w.lint()

	ticker := time.NewTicker(w.debounce())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) debounce() time.Duration {
	if w.cfg.DebounceDelay <= 0 {
		return 500 * time.Millisecond
	}
	return w.cfg.DebounceDelay
}

// addWatchesRecursive adds watches to all directories under root.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		// Skip excluded and hidden directories
		base := filepath.Base(path)
		if w.excludes[base] || (strings.HasPrefix(base, ".") && base != "." && path != root) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

// handleFSEvent marks a lint run pending for relevant changes. Newly
// created directories are added to the watch set.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.excludes[filepath.Base(event.Name)] {
				_ = w.addWatchesRecursive(event.Name)
			}
			return
		}
	}

	if filepath.Ext(event.Name) != ".json" {
		return
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()
	w.logger.Debug("Model change detected", "path", event.Name, "op", event.Op.String())
}

// flushPending runs the linter when changes have settled.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = false
	w.pendingMu.Unlock()

	if pending {
		w.lint()
	}
}

func (w *Watcher) lint() {
	if _, err := w.runner.RunAndRender(w.out, nil); err != nil {
		w.logger.Error("Lint run failed", "error", err)
	}
}
