// Package defs implements the concrete definition kinds: markup (the
// application, component, interface and event descriptors), script bundle
// members, styles and primitive types.
package defs

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// base carries the state shared by every definition kind.
type base struct {
	desc    descriptor.Descriptor
	access  definition.Access
	ownHash string
	valid   atomic.Bool
}

func newBase(d descriptor.Descriptor, access definition.Access, content string) base {
	return base{desc: d, access: access, ownHash: HashContent(content)}
}

// HashContent is the own hash of a piece of source text.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func (b *base) Descriptor() descriptor.Descriptor { return b.desc }

func (b *base) Access() definition.Access { return b.access }

func (b *base) OwnHash() string { return b.ownHash }

func (b *base) IsValid() bool { return b.valid.Load() }

func (b *base) MarkValid() { b.valid.Store(true) }

// AppendSupers is a no-op for kinds without supertypes.
func (b *base) AppendSupers(descriptor.Set) error { return nil }

// AppendDependencies is a no-op for kinds without references.
func (b *base) AppendDependencies(descriptor.Set) {}

// ValidateReferences is a no-op for kinds without references.
func (b *base) ValidateReferences(definition.ReferenceContext) error { return nil }
