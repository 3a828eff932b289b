package access

import (
	"context"

	"github.com/zjrosen/defreg/internal/defcache"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/metrics"
)

// DefaultUnsecuredPrefixes are referencing prefixes that skip access checks.
var DefaultUnsecuredPrefixes = []string{"aura"}

// Guard caches policy verdicts in the shared access cache.
type Guard struct {
	caches    *defcache.Caches
	policy    Policy
	unsecured map[string]bool
	metrics   *metrics.Metrics
}

func NewGuard(caches *defcache.Caches, policy Policy, unsecuredPrefixes []string, m *metrics.Metrics) *Guard {
	g := &Guard{
		caches:    caches,
		policy:    policy,
		unsecured: make(map[string]bool, len(unsecuredPrefixes)),
		metrics:   m,
	}
	for _, p := range unsecuredPrefixes {
		g.unsecured[p] = true
	}
	return g
}

// Assert returns a NoAccessError when referencing may not use target.
// A zero referencing descriptor stands for a top-level request.
func (g *Guard) Assert(ctx context.Context, referencing descriptor.Descriptor, target definition.Definition) error {
	if target.Access().IsGlobal() {
		g.metrics.AccessCheck(true, "global")
		return nil
	}
	if !referencing.IsZero() && g.unsecured[referencing.Prefix] {
		g.metrics.AccessCheck(true, "unsecured")
		return nil
	}

	key := VerdictKey(ctx, referencing, target.Descriptor())
	if verdict, ok := g.caches.AccessVerdict(ctx, key); ok {
		g.metrics.AccessCheck(verdict == "", "cached")
		return toError(verdict)
	}

	verdict := g.policy.Check(ctx, referencing, target)
	g.caches.PutAccessVerdict(ctx, key, verdict)
	g.metrics.AccessCheck(verdict == "", "policy")
	if verdict != "" {
		log.Debug(log.CatAccess, "access denied", "referencing", referencing, "target", target.Descriptor(), "reason", verdict)
	}
	return toError(verdict)
}

// VerdictKey is the access cache key "referencingKey|targetKey", with an
// "|anon" suffix for unauthenticated requests.
func VerdictKey(ctx context.Context, referencing, target descriptor.Descriptor) string {
	ref := ""
	if !referencing.IsZero() {
		ref = referencing.Key()
	}
	key := ref + "|" + target.Key()
	if !IsAuthenticated(ctx) {
		key += "|anon"
	}
	return key
}

func toError(verdict string) error {
	if verdict == "" {
		return nil
	}
	return definition.NewNoAccess(verdict)
}
