package registry

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// ComputeUID digests the sorted "key=ownHash" lines of a dependency set.
// The result depends only on the identity and content of the set.
func ComputeUID(defs map[descriptor.Descriptor]definition.Definition) string {
	keys := make([]descriptor.Descriptor, 0, len(defs))
	for d := range defs {
		keys = append(keys, d)
	}
	descriptor.Sort(keys)

	h := sha256.New()
	for _, d := range keys {
		h.Write([]byte(d.Key()))
		h.Write([]byte{'='})
		h.Write([]byte(defs[d].OwnHash()))
		h.Write([]byte{'\n'})
	}
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
