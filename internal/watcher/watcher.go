// Package watcher provides debounced, recursive file system watching for
// source directories.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/defreg/internal/log"
)

// Op is the coalesced kind of change observed for a path.
type Op int

const (
	OpWrite Op = iota
	OpCreate
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	default:
		return "write"
	}
}

// Change is one path that changed during a debounce window.
type Change struct {
	Path string
	Op   Op
}

// Watcher monitors a directory tree and delivers batches of changed paths.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	debounce  time.Duration
	relevant  func(path string) bool
	onChange  chan []Change
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Root        string
	DebounceDur time.Duration
	// Relevant filters paths; nil accepts every file.
	Relevant func(path string) bool
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		DebounceDur: 250 * time.Millisecond,
	}
}

// New creates a new directory watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	relevant := cfg.Relevant
	if relevant == nil {
		relevant = func(string) bool { return true }
	}

	return &Watcher{
		fsWatcher: fsw,
		root:      cfg.Root,
		debounce:  cfg.DebounceDur,
		relevant:  relevant,
		onChange:  make(chan []Change, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching every directory under the root.
// Returns a channel receiving one batch per debounce window.
func (w *Watcher) Start() (<-chan []Change, error) {
	if err := w.addTree(w.root); err != nil {
		return nil, err
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		return nil
	})
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]Op)
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.ErrorErr(log.CatWatcher, "watch new directory", err, "path", event.Name)
					}
					continue
				}
			}

			op, ok := classify(event)
			if !ok || !w.relevant(event.Name) {
				continue
			}
			pending[event.Name] = merge(pending[event.Name], op)

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if len(pending) == 0 {
				continue
			}
			batch := make([]Change, 0, len(pending))
			for path, op := range pending {
				batch = append(batch, Change{Path: path, Op: op})
			}
			sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
			pending = make(map[string]Op)

			select {
			case w.onChange <- batch:
			default:
				log.Warn(log.CatWatcher, "dropped change batch", "paths", len(batch))
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "fsnotify error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func classify(event fsnotify.Event) (Op, bool) {
	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return OpRemove, true
	case event.Op&fsnotify.Create != 0:
		return OpCreate, true
	case event.Op&fsnotify.Write != 0:
		return OpWrite, true
	default:
		return 0, false
	}
}

// merge folds a new op into the pending one for the same path. A create
// followed by writes stays a create; a remove always wins.
func merge(prev, next Op) Op {
	if next == OpRemove {
		return OpRemove
	}
	if prev == OpCreate {
		return OpCreate
	}
	return next
}
