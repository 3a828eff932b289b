// Package source loads raw definition text from backing stores and reports
// changes to it.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// ErrNotFound is returned by Get for descriptors a loader does not hold.
var ErrNotFound = errors.New("source not found")

// NamespaceAccess classifies the namespaces a loader serves.
// Internal namespaces are controlled content: cacheable, static and linted.
// Custom namespaces are user editable and never shared across requests.
type NamespaceAccess string

const (
	Internal NamespaceAccess = "internal"
	Custom   NamespaceAccess = "custom"
)

// ParseNamespaceAccess reads "internal" or "custom".
func ParseNamespaceAccess(s string) (NamespaceAccess, error) {
	switch a := NamespaceAccess(strings.ToLower(strings.TrimSpace(s))); a {
	case Internal, Custom:
		return a, nil
	case "":
		return Internal, nil
	default:
		return "", fmt.Errorf("unknown namespace access %q", s)
	}
}

// Source is the raw text of one definition.
type Source struct {
	Descriptor   descriptor.Descriptor
	Content      string
	LastModified time.Time
}

// Loader serves raw sources for a set of namespaces.
type Loader interface {
	Name() string
	Access() NamespaceAccess
	Namespaces() []string
	Prefixes() []string
	DefTypes() []descriptor.DefType

	Get(ctx context.Context, d descriptor.Descriptor) (Source, error)
	Exists(ctx context.Context, d descriptor.Descriptor) bool
	Find(ctx context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error)

	// Subscribe registers l for change events. Listeners run synchronously.
	Subscribe(l Listener)
}

// ChangeKind is what happened to a source.
type ChangeKind string

const (
	Created ChangeKind = "created"
	Changed ChangeKind = "changed"
	Deleted ChangeKind = "deleted"
)

// ChangeEvent reports one source change.
type ChangeEvent struct {
	Kind       ChangeKind
	Descriptor descriptor.Descriptor
	// Delta is a patch from the previous content, set for Changed when it was known.
	Delta string
}

func (e ChangeEvent) String() string {
	return fmt.Sprintf("%s %s", e.Kind, e.Descriptor)
}

// Listener receives change events.
type Listener func(ChangeEvent)

// Notifier fans change events out to listeners. Loaders embed it.
type Notifier struct {
	mu        sync.Mutex
	listeners []Listener
}

// Subscribe registers l.
func (n *Notifier) Subscribe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

// Emit delivers ev to every listener in registration order.
func (n *Notifier) Emit(ev ChangeEvent) {
	n.mu.Lock()
	listeners := append([]Listener(nil), n.listeners...)
	n.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

// Delta renders the line patch turning before into after.
func Delta(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	return dmp.PatchToText(dmp.PatchMake(before, diffs))
}

// findIn applies f to candidate descriptors, sorted.
func findIn(f descriptor.Filter, candidates []descriptor.Descriptor) []descriptor.Descriptor {
	var out []descriptor.Descriptor
	for _, d := range candidates {
		if f.Matches(d) {
			out = append(out, d)
		}
	}
	descriptor.Sort(out)
	return out
}

var (
	sourcePrefixes = []string{descriptor.MarkupPrefix, descriptor.JSPrefix, descriptor.CSSPrefix}
	sourceDefTypes = []descriptor.DefType{
		descriptor.Application, descriptor.Component, descriptor.Interface, descriptor.Event,
		descriptor.Controller, descriptor.Helper, descriptor.Renderer, descriptor.Provider,
		descriptor.Style,
	}
)
