package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/deepnoodle-ai/brightdata/slogger"
	"github.com/fsnotify/fsnotify"
)

// configWatcher watches configuration paths and invokes onChange when a
// matching file is written, created, or removed. Events are debounced per
// path so editors that write in bursts trigger once.
type configWatcher struct {
	patterns  []string
	debounce  time.Duration
	logger    slogger.Logger
	watcher   *fsnotify.Watcher
	onChange  func(path string)
	debouncer map[string]time.Time
}

func newConfigWatcher(patterns []string, debounce time.Duration, logger slogger.Logger, onChange func(path string)) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &configWatcher{
		patterns:  patterns,
		debounce:  debounce,
		logger:    logger,
		watcher:   watcher,
		onChange:  onChange,
		debouncer: make(map[string]time.Time),
	}, nil
}

// Start begins watching and blocks until ctx is done.
func (w *configWatcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addWatchPaths(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

// addWatchPaths registers the parent directories of all files matching the
// patterns. Watching directories rather than files survives the
// rename-and-replace dance most editors do on save.
func (w *configWatcher) addWatchPaths() error {
	watchedDirs := make(map[string]bool)
	for _, pattern := range w.patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			dir := match
			if info, err := os.Stat(match); err != nil || !info.IsDir() {
				dir = filepath.Dir(match)
			}
			if watchedDirs[dir] {
				continue
			}
			if err := w.watcher.Add(dir); err != nil {
				w.logger.Warn("failed to watch directory", "dir", dir, "error", err)
				continue
			}
			w.logger.Debug("watching directory", "dir", dir)
			watchedDirs[dir] = true
		}
	}
	if len(watchedDirs) == 0 {
		return fmt.Errorf("no directories found to watch for patterns: %s", strings.Join(w.patterns, ", "))
	}
	return nil
}

func (w *configWatcher) handleEvent(event fsnotify.Event) {
	if !w.matchesPatterns(event.Name) {
		return
	}
	now := time.Now()
	if last, ok := w.debouncer[event.Name]; ok && now.Sub(last) < w.debounce {
		return
	}
	w.debouncer[event.Name] = now

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
		w.onChange(event.Name)
	}
}

func (w *configWatcher) matchesPatterns(path string) bool {
	for _, pattern := range w.patterns {
		if matched, _ := doublestar.PathMatch(pattern, path); matched {
			return true
		}
	}
	return false
}
