package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/log"
)

// sourceGlob matches every bundle file: <ns>/<name>/<file>.
const sourceGlob = "*/*/*.{cmp,app,intf,evt,js,css}"

// markupExtensions maps file extensions to markup types.
var markupExtensions = map[string]descriptor.DefType{
	".cmp":  descriptor.Component,
	".app":  descriptor.Application,
	".intf": descriptor.Interface,
	".evt":  descriptor.Event,
}

// scriptSuffixes maps script file suffixes to bundle member types.
var scriptSuffixes = map[string]descriptor.DefType{
	"Controller.js": descriptor.Controller,
	"Helper.js":     descriptor.Helper,
	"Renderer.js":   descriptor.Renderer,
	"Provider.js":   descriptor.Provider,
}

var _ Loader = (*FSLoader)(nil)

// FSLoader serves bundles laid out as <namespace>/<name>/<file> in an fs.FS.
type FSLoader struct {
	Notifier

	name   string
	fsys   fs.FS
	access NamespaceAccess
}

// NewFSLoader wraps fsys. Namespaces are its top-level directories.
func NewFSLoader(name string, fsys fs.FS, access NamespaceAccess) *FSLoader {
	return &FSLoader{name: name, fsys: fsys, access: access}
}

func (l *FSLoader) Name() string                   { return l.name }
func (l *FSLoader) Access() NamespaceAccess        { return l.access }
func (l *FSLoader) Prefixes() []string             { return sourcePrefixes }
func (l *FSLoader) DefTypes() []descriptor.DefType { return sourceDefTypes }

// Namespaces lists the top-level directories.
func (l *FSLoader) Namespaces() []string {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		log.ErrorErr(log.CatSource, "list namespaces", err, "loader", l.name)
		return nil
	}
	var namespaces []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			namespaces = append(namespaces, e.Name())
		}
	}
	sort.Strings(namespaces)
	return namespaces
}

func (l *FSLoader) Get(_ context.Context, d descriptor.Descriptor) (Source, error) {
	p, ok := PathFor(d)
	if !ok {
		return Source{}, ErrNotFound
	}
	content, err := fs.ReadFile(l.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return Source{}, ErrNotFound
	}
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", p, err)
	}
	src := Source{Descriptor: d, Content: string(content)}
	if info, err := fs.Stat(l.fsys, p); err == nil {
		src.LastModified = info.ModTime()
	}
	return src, nil
}

func (l *FSLoader) Exists(_ context.Context, d descriptor.Descriptor) bool {
	p, ok := PathFor(d)
	if !ok {
		return false
	}
	info, err := fs.Stat(l.fsys, p)
	return err == nil && !info.IsDir()
}

func (l *FSLoader) Find(_ context.Context, f descriptor.Filter) ([]descriptor.Descriptor, error) {
	paths, err := doublestar.Glob(l.fsys, sourceGlob)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", l.name, err)
	}
	candidates := make([]descriptor.Descriptor, 0, len(paths))
	for _, p := range paths {
		if d, ok := DescriptorFor(p); ok {
			candidates = append(candidates, d)
		}
	}
	return findIn(f, candidates), nil
}

// PathFor maps a descriptor to its bundle file path.
func PathFor(d descriptor.Descriptor) (string, bool) {
	dir := path.Join(d.Namespace, d.Name)
	switch {
	case d.Prefix == descriptor.MarkupPrefix:
		for ext, t := range markupExtensions {
			if t == d.DefType {
				return path.Join(dir, d.Name+ext), true
			}
		}
	case d.Prefix == descriptor.JSPrefix:
		for suffix, t := range scriptSuffixes {
			if t == d.DefType {
				return path.Join(dir, d.Name+suffix), true
			}
		}
	case d.Prefix == descriptor.CSSPrefix && d.DefType == descriptor.Style:
		return path.Join(dir, d.Name+".css"), true
	}
	return "", false
}

// DescriptorFor maps a bundle file path back to its descriptor.
func DescriptorFor(p string) (descriptor.Descriptor, bool) {
	parts := strings.Split(path.Clean(p), "/")
	if len(parts) != 3 {
		return descriptor.Descriptor{}, false
	}
	ns, name, file := parts[0], parts[1], parts[2]

	var d descriptor.Descriptor
	switch {
	case file == name+".css":
		d = descriptor.New(ns, name, descriptor.Style)
	case markupExtensions[path.Ext(file)] != "" && file == name+path.Ext(file):
		d = descriptor.New(ns, name, markupExtensions[path.Ext(file)])
	default:
		for suffix, t := range scriptSuffixes {
			if file == name+suffix {
				d = descriptor.New(ns, name, t)
			}
		}
	}
	if d.IsZero() {
		return d, false
	}
	// Reject names the descriptor grammar does not allow.
	if _, err := descriptor.ParseKey(d.Key()); err != nil {
		return descriptor.Descriptor{}, false
	}
	return d, true
}
