// Package builtin embeds the sources of the aura namespace.
package builtin

import (
	"embed"
	"io/fs"

	"github.com/zjrosen/defreg/internal/source"
)

// Namespace is the namespace served by the built-in loader.
const Namespace = "aura"

//go:embed sources
var sources embed.FS

// FS returns the built-in bundles laid out as <namespace>/<name>/<file>.
func FS() fs.FS {
	sub, err := fs.Sub(sources, "sources")
	if err != nil {
		panic(err)
	}
	return sub
}

// Loader serves the built-in bundles as an internal namespace.
func Loader() *source.FSLoader {
	return source.NewFSLoader("builtin", FS(), source.Internal)
}
