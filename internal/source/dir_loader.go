package source

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/watcher"
)

var _ Loader = (*DirLoader)(nil)

// DirLoader is an FSLoader over a directory that can watch it for changes.
type DirLoader struct {
	*FSLoader
	root string

	mu       sync.Mutex
	snapshot map[descriptor.Descriptor]string
}

// NewDirLoader serves the bundles under root.
func NewDirLoader(name, root string, access NamespaceAccess) *DirLoader {
	return &DirLoader{
		FSLoader: NewFSLoader(name, os.DirFS(root), access),
		root:     root,
		snapshot: make(map[descriptor.Descriptor]string),
	}
}

// Root returns the watched directory.
func (l *DirLoader) Root() string { return l.root }

// Get remembers the content it returns so later changes carry a delta.
func (l *DirLoader) Get(ctx context.Context, d descriptor.Descriptor) (Source, error) {
	src, err := l.FSLoader.Get(ctx, d)
	if err != nil {
		return src, err
	}
	l.mu.Lock()
	l.snapshot[d] = src.Content
	l.mu.Unlock()
	return src, nil
}

// Watch reports file changes under the root as change events until ctx is done.
func (l *DirLoader) Watch(ctx context.Context, cfg watcher.Config) error {
	cfg.Root = l.root
	cfg.Relevant = func(p string) bool {
		_, ok := l.descriptorForPath(p)
		return ok
	}
	w, err := watcher.New(cfg)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}
	log.Info(log.CatSource, "watching source directory", "loader", l.name, "root", l.root)

	go func() {
		defer func() { _ = w.Stop() }()
		for {
			select {
			case <-ctx.Done():
				return
			case batch := <-changes:
				for _, c := range batch {
					l.handle(ctx, c)
				}
			}
		}
	}()
	return nil
}

func (l *DirLoader) descriptorForPath(p string) (descriptor.Descriptor, bool) {
	rel, err := filepath.Rel(l.root, p)
	if err != nil {
		return descriptor.Descriptor{}, false
	}
	return DescriptorFor(filepath.ToSlash(rel))
}

func (l *DirLoader) handle(ctx context.Context, c watcher.Change) {
	d, ok := l.descriptorForPath(c.Path)
	if !ok {
		return
	}

	ev := ChangeEvent{Descriptor: d}
	switch {
	case c.Op == watcher.OpRemove || !l.Exists(ctx, d):
		ev.Kind = Deleted
		l.mu.Lock()
		delete(l.snapshot, d)
		l.mu.Unlock()
	case c.Op == watcher.OpCreate:
		ev.Kind = Created
	default:
		ev.Kind = Changed
		l.mu.Lock()
		before, known := l.snapshot[d]
		l.mu.Unlock()
		if known {
			if src, err := l.FSLoader.Get(ctx, d); err == nil {
				ev.Delta = Delta(before, src.Content)
			}
		}
	}
	log.Debug(log.CatSource, "source changed on disk", "loader", l.name, "event", ev)
	l.Emit(ev)
}
