package defcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/defreg/internal/cachemanager"
	"github.com/zjrosen/defreg/internal/defs"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/metrics"
	"github.com/zjrosen/defreg/internal/mocks"
	"github.com/zjrosen/defreg/internal/pubsub"
	"github.com/zjrosen/defreg/internal/source"
)

var (
	cmp  = descriptor.New("test", "button", descriptor.Component)
	ctrl = descriptor.New("test", "button", descriptor.Controller)
	hlp  = descriptor.New("test", "button", descriptor.Helper)
	card = descriptor.New("test", "card", descriptor.Component)
)

func newTestCaches(t *testing.T) *Caches {
	t.Helper()
	c := New(DefaultConfig(), nil)
	t.Cleanup(c.Close)
	return c
}

func validScript(d descriptor.Descriptor) *defs.ScriptDef {
	s := defs.NewScriptDef(d, "({})", false)
	s.MarkValid()
	return s
}

func TestCaches_DefinitionsAndAbsent(t *testing.T) {
	ctx := context.Background()
	c := newTestCaches(t)

	_, ok := c.Definition(ctx, ctrl)
	require.False(t, ok)

	c.PutDefinition(ctx, validScript(ctrl))
	e, ok := c.Definition(ctx, ctrl)
	require.True(t, ok)
	require.False(t, e.Absent())
	require.Equal(t, ctrl, e.Def.Descriptor())

	c.PutAbsent(ctx, hlp)
	e, ok = c.Definition(ctx, hlp)
	require.True(t, ok)
	require.True(t, e.Absent())
}

func TestCaches_TypedLookups(t *testing.T) {
	ctx := context.Background()
	c := newTestCaches(t)

	c.PutExists(ctx, cmp, true)
	exists, ok := c.HasExists(ctx, cmp)
	require.True(t, ok)
	require.True(t, exists)

	f := descriptor.MustParseFilter("markup://test:*", descriptor.Component)
	results := []descriptor.Descriptor{cmp, card}
	c.PutFilterResults(ctx, f, results)
	results[0] = descriptor.Descriptor{}
	got, ok := c.FilterResults(ctx, f)
	require.True(t, ok)
	require.Equal(t, []descriptor.Descriptor{cmp, card}, got)

	c.PutAccessVerdict(ctx, "a|b", "denied")
	v, ok := c.AccessVerdict(ctx, "a|b")
	require.True(t, ok)
	require.Equal(t, "denied", v)

	entry := &DependencyEntry{UID: "u1", Root: cmp, Deps: descriptor.NewSet(cmp, ctrl)}
	c.PutDependencyEntry(ctx, "", entry)
	c.PutDependencyEntry(ctx, "", &DependencyEntry{Root: card, Err: errors.New("broken")})
	dep, ok := c.DependencyEntry(ctx, "", cmp)
	require.True(t, ok)
	require.Same(t, entry, dep)
	_, ok = c.DependencyEntry(ctx, "", card)
	require.False(t, ok)

	require.Equal(t, []string{"/" + cmp.Key()}, c.Keys(ctx, KindDeps))
	require.Nil(t, c.Keys(ctx, Kind("bogus")))

	stats := c.Stats(ctx)
	require.Equal(t, 1, stats.Entries[KindExists])
	require.Equal(t, 1, stats.Entries[KindFilters])
	require.Equal(t, 1, stats.Entries[KindAccess])
	require.Equal(t, 1, stats.Entries[KindDeps])
	require.Equal(t, 0, stats.Entries[KindDefinitions])
}

func TestCaches_CacheExceptions(t *testing.T) {
	c := newTestCaches(t)
	require.True(t, c.IsCacheException("apex"))
	require.True(t, c.IsCacheException("APEX"))
	require.False(t, c.IsCacheException("markup"))
}

func TestNotifySourceChange_ChangedKeepsBundleSibling(t *testing.T) {
	ctx := context.Background()
	c := newTestCaches(t)
	c.PutDefinition(ctx, validScript(ctrl))
	c.PutDefinition(ctx, validScript(hlp))
	c.PutExists(ctx, ctrl, true)

	inv := c.NotifySourceChange(ctx, source.ChangeEvent{Kind: source.Changed, Descriptor: hlp})

	_, ok := c.Definition(ctx, hlp)
	require.False(t, ok)
	_, ok = c.Definition(ctx, ctrl)
	require.True(t, ok)
	_, ok = c.HasExists(ctx, ctrl)
	require.True(t, ok)
	require.Equal(t, 1, inv.Evicted[KindDefinitions])
	require.Equal(t, uint64(1), inv.Generation)
	require.Equal(t, uint64(1), c.Generation())
}

func TestNotifySourceChange_MemberCreatedEvictsMarkup(t *testing.T) {
	ctx := context.Background()
	c := newTestCaches(t)
	c.PutExists(ctx, cmp, true)
	c.PutExists(ctx, card, true)
	c.PutDependencyEntry(ctx, "", &DependencyEntry{Root: cmp, Deps: descriptor.NewSet(cmp)})
	c.PutDependencyEntry(ctx, "", &DependencyEntry{Root: card, Deps: descriptor.NewSet(card)})

	c.NotifySourceChange(ctx, source.ChangeEvent{Kind: source.Created, Descriptor: ctrl})

	_, ok := c.HasExists(ctx, cmp)
	require.False(t, ok)
	_, ok = c.HasExists(ctx, card)
	require.True(t, ok)
	_, ok = c.DependencyEntry(ctx, "", cmp)
	require.False(t, ok)
	_, ok = c.DependencyEntry(ctx, "", card)
	require.True(t, ok)
}

func TestNotifySourceChange_FiltersAndAccess(t *testing.T) {
	ctx := context.Background()
	c := newTestCaches(t)
	buttons := descriptor.MustParseFilter("markup://test:butt*", descriptor.Component)
	cards := descriptor.MustParseFilter("markup://test:car*", descriptor.Component)
	c.PutFilterResults(ctx, buttons, []descriptor.Descriptor{cmp})
	c.PutFilterResults(ctx, cards, []descriptor.Descriptor{card})
	c.PutAccessVerdict(ctx, card.Key()+"|"+cmp.Key(), "")
	c.PutAccessVerdict(ctx, card.Key()+"|"+ctrl.Key(), "")

	inv := c.NotifySourceChange(ctx, source.ChangeEvent{Kind: source.Deleted, Descriptor: cmp})

	_, ok := c.FilterResults(ctx, buttons)
	require.False(t, ok)
	_, ok = c.FilterResults(ctx, cards)
	require.True(t, ok)
	require.Equal(t, []string{card.Key() + "|" + ctrl.Key()}, c.Keys(ctx, KindAccess))
	require.Equal(t, 1, inv.Evicted[KindFilters])
	require.Equal(t, 1, inv.Evicted[KindAccess])
}

func TestNotifySourceChange_Publishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := newTestCaches(t)
	ch := c.Subscribe(ctx)

	c.NotifySourceChange(ctx, source.ChangeEvent{Kind: source.Created, Descriptor: card})

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	ev, ok := pubsub.Next(waitCtx, ch)
	require.True(t, ok)
	require.Equal(t, pubsub.EvictedEvent, ev.Type)
	require.Equal(t, card, ev.Payload.Event.Descriptor)
	require.Equal(t, uint64(1), ev.Payload.Generation)
}

func TestNotifySourceChange_ListenerAndMetrics(t *testing.T) {
	ctx := context.Background()
	m := metrics.New()
	c := New(DefaultConfig(), m)
	t.Cleanup(c.Close)

	loader := source.NewStringLoader("strings", source.Internal)
	loader.Subscribe(c.Listener())

	d := descriptor.New("string", "a", descriptor.Component)
	c.PutExists(ctx, d, false)
	loader.Put(d, "")
	loader.Put(d, "description: x")

	require.Equal(t, uint64(2), c.Generation())
	_, ok := c.HasExists(ctx, d)
	require.False(t, ok)

	require.Equal(t, 2.0, registryGauge(t, m))
}

func registryGauge(t *testing.T, m *metrics.Metrics) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "defreg_cache_generation" {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("generation gauge not registered")
	return 0
}

func TestNotifySourceChange_DeleteErrorIsLogged(t *testing.T) {
	ctx := context.Background()
	defsMock := mocks.NewMockCacheManager[string, DefEntry](t)
	defsMock.EXPECT().Keys(mock.Anything).Return([]string{ctrl.Key()})
	defsMock.EXPECT().Delete(mock.Anything, ctrl.Key()).Return(errors.New("store offline"))

	exp := cachemanager.NoExpiration
	c := NewWithManagers(Managers{
		Definitions: defsMock,
		Exists:      cachemanager.NewInMemoryCacheManager[string, bool]("exists", exp, time.Minute),
		Filters:     cachemanager.NewInMemoryCacheManager[string, FilterEntry]("filters", exp, time.Minute),
		Access:      cachemanager.NewInMemoryCacheManager[string, string]("access", exp, time.Minute),
		Deps:        cachemanager.NewInMemoryCacheManager[string, *DependencyEntry]("deps", exp, time.Minute),
	}, nil, nil)
	t.Cleanup(c.Close)

	inv := c.NotifySourceChange(ctx, source.ChangeEvent{Kind: source.Changed, Descriptor: ctrl})
	require.Equal(t, 0, inv.Evicted[KindDefinitions])
	require.Equal(t, uint64(1), inv.Generation)
}

func TestFlush(t *testing.T) {
	ctx := context.Background()
	c := newTestCaches(t)
	c.PutExists(ctx, cmp, true)
	c.PutDefinition(ctx, validScript(ctrl))

	require.NoError(t, c.Flush(ctx))
	require.Empty(t, c.Keys(ctx, KindExists))
	require.Empty(t, c.Keys(ctx, KindDefinitions))
	require.Equal(t, uint64(1), c.Generation())
}
