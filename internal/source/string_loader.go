package source

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/log"
)

// Default namespaces of in-memory sources.
const (
	DefaultStringNamespace       = "string"
	DefaultCustomStringNamespace = "cstring"
)

var _ Loader = (*StringLoader)(nil)

// StringLoader holds sources in memory. It is the loader for generated and
// test content.
type StringLoader struct {
	Notifier

	name       string
	access     NamespaceAccess
	namespaces []string

	mu      sync.RWMutex
	sources map[descriptor.Descriptor]Source
}

// NewStringLoader creates an empty loader. Without namespaces it serves the
// default string namespace for its access.
func NewStringLoader(name string, access NamespaceAccess, namespaces ...string) *StringLoader {
	if len(namespaces) == 0 {
		namespaces = []string{DefaultStringNamespace}
		if access == Custom {
			namespaces = []string{DefaultCustomStringNamespace}
		}
	}
	return &StringLoader{
		name:       name,
		access:     access,
		namespaces: namespaces,
		sources:    make(map[descriptor.Descriptor]Source),
	}
}

func (l *StringLoader) Name() string                   { return l.name }
func (l *StringLoader) Access() NamespaceAccess        { return l.access }
func (l *StringLoader) Namespaces() []string           { return l.namespaces }
func (l *StringLoader) Prefixes() []string             { return sourcePrefixes }
func (l *StringLoader) DefTypes() []descriptor.DefType { return sourceDefTypes }

// Put stores content for d and notifies listeners. It reports whether d is new.
func (l *StringLoader) Put(d descriptor.Descriptor, content string) bool {
	l.mu.Lock()
	prev, existed := l.sources[d]
	l.sources[d] = Source{Descriptor: d, Content: content, LastModified: time.Now()}
	l.mu.Unlock()

	ev := ChangeEvent{Kind: Created, Descriptor: d}
	if existed {
		ev = ChangeEvent{Kind: Changed, Descriptor: d, Delta: Delta(prev.Content, content)}
	}
	log.Debug(log.CatSource, "string source stored", "loader", l.name, "event", ev)
	l.Emit(ev)
	return !existed
}

// Remove deletes d and notifies listeners. It reports whether d was present.
func (l *StringLoader) Remove(d descriptor.Descriptor) bool {
	l.mu.Lock()
	_, existed := l.sources[d]
	delete(l.sources, d)
	l.mu.Unlock()

	if existed {
		l.Emit(ChangeEvent{Kind: Deleted, Descriptor: d})
	}
	return existed
}

// Nonce returns an unused descriptor of type t in the first namespace.
func (l *StringLoader) Nonce(t descriptor.DefType) descriptor.Descriptor {
	name := "thing" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return descriptor.New(l.namespaces[0], name, t)
}

// PutNonce stores content under a fresh descriptor of type t.
func (l *StringLoader) PutNonce(t descriptor.DefType, content string) descriptor.Descriptor {
	d := l.Nonce(t)
	l.Put(d, content)
	return d
}

func (l *StringLoader) Get(_ context.Context, d descriptor.Descriptor) (Source, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	src, ok := l.sources[d]
	if !ok {
		return Source{}, ErrNotFound
	}
	return src, nil
}

func (l *StringLoader) Exists(_ context.Context, d descriptor.Descriptor) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.sources[d]
	return ok
}

func (l *StringLoader) Find(_ context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error) {
	l.mu.RLock()
	candidates := make([]descriptor.Descriptor, 0, len(l.sources))
	for d := range l.sources {
		candidates = append(candidates, d)
	}
	l.mu.RUnlock()

	return findIn(f, candidates), nil
}
