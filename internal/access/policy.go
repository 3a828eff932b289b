// Package access decides whether one definition may reference another.
package access

import (
	"context"
	"fmt"

	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// Policy decides a reference. It returns "" to allow it or the denial message.
type Policy interface {
	Check(ctx context.Context, referencing descriptor.Descriptor, target definition.Definition) string
}

type authKey struct{}

// WithAuthenticated records the authentication state of the request in ctx.
func WithAuthenticated(ctx context.Context, authenticated bool) context.Context {
	return context.WithValue(ctx, authKey{}, authenticated)
}

// IsAuthenticated reads the state set by WithAuthenticated. Requests are
// authenticated unless marked otherwise.
func IsAuthenticated(ctx context.Context) bool {
	v, ok := ctx.Value(authKey{}).(bool)
	return !ok || v
}

var _ Policy = (*DefaultPolicy)(nil)

// DefaultPolicy applies access levels against a list of internal namespaces.
type DefaultPolicy struct {
	internal map[string]bool
}

func NewDefaultPolicy(internalNamespaces ...string) *DefaultPolicy {
	p := &DefaultPolicy{internal: make(map[string]bool, len(internalNamespaces))}
	for _, ns := range internalNamespaces {
		p.internal[ns] = true
	}
	return p
}

// IsInternal reports whether ns is an internal namespace.
func (p *DefaultPolicy) IsInternal(ns string) bool {
	return p.internal[ns]
}

func (p *DefaultPolicy) Check(ctx context.Context, referencing descriptor.Descriptor, target definition.Definition) string {
	a := target.Access()
	d := target.Descriptor()

	if !a.RequiresAuthentication() {
		return ""
	}
	if !IsAuthenticated(ctx) {
		return fmt.Sprintf("Access to %s '%s' disallowed: authentication required", d.DefType, d)
	}

	allowed := false
	switch a.Level {
	case definition.AccessGlobal:
		allowed = true
	case definition.AccessPublic:
		allowed = referencing.IsZero() || referencing.Namespace == d.Namespace || p.internal[referencing.Namespace]
	case definition.AccessInternal:
		allowed = !referencing.IsZero() && p.internal[referencing.Namespace]
	case definition.AccessPrivate:
		allowed = !referencing.IsZero() && referencing.SameBundle(d)
	}
	if allowed {
		return ""
	}
	return fmt.Sprintf("Access to %s '%s' from namespace '%s' in '%s(%s)' disallowed by %s access",
		d.DefType, d, referencing.Namespace, referencing, referencing.DefType, a.Level)
}
