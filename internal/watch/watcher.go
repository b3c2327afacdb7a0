// Package watch reruns generation when model files change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileWatcher watches files below a root directory for changes based on patterns
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	root     string
	patterns []string
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger
}

// Option configures a FileWatcher
type Option func(*FileWatcher)

// WithLogger sets the logger used for watcher errors
func WithLogger(logger zerolog.Logger) Option {
	return func(fw *FileWatcher) {
		fw.logger = logger
	}
}

// NewFileWatcher creates a new file watcher. Patterns are doublestar globs
// relative to root; a pattern without a slash matches the base name.
func NewFileWatcher(root string, patterns, exclude []string, onChange func(path string, op fsnotify.Op), opts ...Option) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		root:     root,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// AddDirectory recursively adds a directory to the watcher, skipping
// excluded subtrees
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != fw.root && fw.excluded(path, true) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}

// Start begins watching for file changes until ctx is done
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if fw.shouldWatch(event.Name) {
				fw.onChange(event.Name, event.Op)
			}

			// If a new directory is created, add it to the watcher
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				fw.logger.Error().Err(err).Msg("watcher error")
			}
		}
	}
}

// relative returns path relative to the root with forward slashes
func (fw *FileWatcher) relative(path string) string {
	rel, err := filepath.Rel(fw.root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func match(pattern, rel string) bool {
	if !strings.Contains(pattern, "/") {
		rel = rel[strings.LastIndex(rel, "/")+1:]
	}
	matched, _ := doublestar.Match(pattern, rel)
	return matched
}

// excluded reports whether path falls under an exclude pattern. A "dir/**"
// pattern also excludes the directory itself.
func (fw *FileWatcher) excluded(path string, isDir bool) bool {
	rel := fw.relative(path)
	for _, pattern := range fw.exclude {
		if match(pattern, rel) {
			return true
		}
		if isDir && strings.HasSuffix(pattern, "/**") && match(strings.TrimSuffix(pattern, "/**"), rel) {
			return true
		}
	}
	return false
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	if fw.excluded(path, false) {
		return false
	}
	rel := fw.relative(path)
	for _, pattern := range fw.patterns {
		if match(pattern, rel) {
			return true
		}
	}
	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

// Debouncer coalesces bursts of changes into one call. fn receives the
// distinct changed paths in the order they were first seen; calls never
// overlap.
type Debouncer struct {
	delay time.Duration
	fn    func(paths []string)

	run     sync.Mutex
	mu      sync.Mutex
	timer   *time.Timer
	pending []string
	stopped bool
}

// NewDebouncer creates a debouncer that calls fn once no change arrived for delay
func NewDebouncer(delay time.Duration, fn func(paths []string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger records a change and restarts the quiet period
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if !slices.Contains(d.pending, path) {
		d.pending = append(d.pending, path)
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := d.pending
	d.pending = nil
	d.mu.Unlock()

	d.run.Lock()
	defer d.run.Unlock()
	d.fn(paths)
}

// Stop drops pending changes; later triggers are ignored
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
	}
}
