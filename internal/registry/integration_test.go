package registry_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/defreg/internal/builtin"
	"github.com/zjrosen/defreg/internal/defcache"
	"github.com/zjrosen/defreg/internal/defs"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/registry"
	"github.com/zjrosen/defreg/internal/source"
	"github.com/zjrosen/defreg/internal/subregistry"
)

var (
	auraComponent = descriptor.New("aura", "component", descriptor.Component)
	auraRoot      = descriptor.New("aura", "rootComponent", descriptor.Component)
)

type fixture struct {
	svc    *registry.Service
	loader *source.StringLoader
	ns     string
}

func newService(loader *source.StringLoader) *registry.Service {
	subs := []registry.SubRegistry{
		subregistry.NewSourceRegistry(loader),
		subregistry.NewSourceRegistry(builtin.Loader()),
		subregistry.NewTypeRegistry(),
	}
	svc := registry.NewService(subs, registry.ServiceOptions{})
	svc.Track(loader)
	return svc
}

func newFixture(t *testing.T, access source.NamespaceAccess) *fixture {
	t.Helper()
	loader := source.NewStringLoader("strings", access)
	svc := newService(loader)
	t.Cleanup(svc.Close)
	return &fixture{svc: svc, loader: loader, ns: loader.Namespaces()[0]}
}

func (f *fixture) desc(name string, t descriptor.DefType) descriptor.Descriptor {
	return descriptor.New(f.ns, name, t)
}

func (f *fixture) put(name string, t descriptor.DefType, content string) descriptor.Descriptor {
	d := f.desc(name, t)
	f.loader.Put(d, content)
	return d
}

// uid compiles root in a fresh request.
func (f *fixture) uid(t *testing.T, root descriptor.Descriptor) (string, *registry.Registry) {
	t.Helper()
	reg := f.svc.NewRegistry(nil)
	uid, err := reg.GetUID(context.Background(), "", root)
	require.NoError(t, err)
	require.NotEmpty(t, uid)
	return uid, reg
}

func TestBundleMembersJoinAndLeaveDependencySet(t *testing.T) {
	f := newFixture(t, source.Internal)
	a := f.put("a", descriptor.Component, "description: plain")

	bare, reg := f.uid(t, a)
	require.ElementsMatch(t, []descriptor.Descriptor{a, auraComponent, auraRoot}, reg.GetDependencies(context.Background(), bare))

	ctrl := f.put("a", descriptor.Controller, "({ go: function(cmp) {} })")
	withCtrl, reg := f.uid(t, a)
	require.NotEqual(t, bare, withCtrl)
	require.Contains(t, reg.GetDependencies(context.Background(), withCtrl), ctrl)

	f.loader.Remove(ctrl)
	restored, _ := f.uid(t, a)
	require.Equal(t, bare, restored)
}

func TestCyclesShareOneDependencySet(t *testing.T) {
	ctx := context.Background()

	cases := map[string]struct {
		a, b string
	}{
		"inner component": {
			a: "components:\n  - string:b\n",
			b: "components:\n  - string:a\n",
		},
		"explicit dependency": {
			a: "dependencies:\n  - resource: string:b\n",
			b: "dependencies:\n  - resource: string:a\n",
		},
		"supertype": {
			a: "extensible: true\nextends: string:b\n",
			b: "extensible: true\ncomponents:\n  - string:a\n",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, source.Internal)
			a := f.put("a", descriptor.Component, tc.a)
			b := f.put("b", descriptor.Component, tc.b)

			reg := f.svc.NewRegistry(nil)
			uidA, err := reg.GetUID(ctx, "", a)
			require.NoError(t, err)
			uidB, err := reg.GetUID(ctx, "", b)
			require.NoError(t, err)

			require.Equal(t, uidA, uidB)
			require.Equal(t, reg.GetDependencies(ctx, uidA), reg.GetDependencies(ctx, uidB))
			require.Subset(t, reg.GetDependencies(ctx, uidA), []descriptor.Descriptor{a, b})
		})
	}
}

func TestUIDDependsOnIdentityAndContent(t *testing.T) {
	const content = "description: same text\n"

	t.Run("distinct descriptors", func(t *testing.T) {
		f := newFixture(t, source.Internal)
		one, _ := f.uid(t, f.put("one", descriptor.Component, content))
		two, _ := f.uid(t, f.put("two", descriptor.Component, content))
		require.NotEqual(t, one, two)
	})

	t.Run("separate services agree", func(t *testing.T) {
		first := newFixture(t, source.Internal)
		second := newFixture(t, source.Internal)
		u1, _ := first.uid(t, first.put("one", descriptor.Component, content))
		u2, _ := second.uid(t, second.put("one", descriptor.Component, content))
		require.Equal(t, u1, u2)
	})

	t.Run("dependency edit", func(t *testing.T) {
		f := newFixture(t, source.Internal)
		a := f.put("a", descriptor.Component, "components:\n  - string:b\n")
		f.put("b", descriptor.Component, content)
		before, _ := f.uid(t, a)

		f.put("b", descriptor.Component, "description: edited\n")
		after, _ := f.uid(t, a)
		require.NotEqual(t, before, after)

		f.put("b", descriptor.Component, content)
		again, _ := f.uid(t, a)
		require.Equal(t, before, again)
	})
}

func TestSourceChangeEvictsDependents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, source.Internal)
	a := f.put("a", descriptor.Component, "components:\n  - string:b\n")
	b := f.put("b", descriptor.Component, "description: inner\n")
	c := f.put("c", descriptor.Component, "description: unrelated\n")
	ctrl := f.put("c", descriptor.Controller, "({ x: function() {} })")
	f.uid(t, a)
	f.uid(t, c)

	hasRoot := func(root descriptor.Descriptor) bool {
		for _, k := range f.svc.Caches().Keys(ctx, defcache.KindDeps) {
			if strings.HasSuffix(k, "/"+root.Key()) {
				return true
			}
		}
		return false
	}
	require.True(t, hasRoot(a))
	require.True(t, hasRoot(c))

	f.put("b", descriptor.Component, "description: changed\n")
	require.False(t, hasRoot(a))
	require.True(t, hasRoot(c))
	require.NotContains(t, f.svc.Caches().Keys(ctx, defcache.KindDefinitions), b.Key())

	// Editing a member leaves its bundle's markup cached.
	f.put("c", descriptor.Controller, "({ y: function() {} })")
	defs := f.svc.Caches().Keys(ctx, defcache.KindDefinitions)
	require.Contains(t, defs, c.Key())
	require.NotContains(t, defs, ctrl.Key())
	require.False(t, hasRoot(c))
}

func TestCustomNamespacesStayLocal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, source.Custom)
	a := f.put("a", descriptor.Component, "description: custom\n")

	uid, reg := f.uid(t, a)
	require.Empty(t, f.svc.Caches().Keys(ctx, defcache.KindDeps))
	require.NotContains(t, f.svc.Caches().Keys(ctx, defcache.KindDefinitions), a.Key())
	require.Contains(t, f.svc.Caches().Keys(ctx, defcache.KindDefinitions), auraComponent.Key())

	def, err := reg.GetDef(ctx, a)
	require.NoError(t, err)
	require.True(t, def.IsValid())

	other, _ := f.uid(t, a)
	require.Equal(t, uid, other)

	filter := descriptor.MustParseFilter("markup://"+f.ns+":*", descriptor.Component)
	found, err := reg.Find(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, []descriptor.Descriptor{a}, found)
	require.Empty(t, f.svc.Caches().Keys(ctx, defcache.KindFilters))
}

func TestFindCachesInternalNamespaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, source.Internal)
	a := f.put("a", descriptor.Component, "description: a\n")
	filter := descriptor.MustParseFilter("markup://string:*", descriptor.Component)

	found, err := f.svc.NewRegistry(nil).Find(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, []descriptor.Descriptor{a}, found)
	require.Equal(t, []string{filter.Key()}, f.svc.Caches().Keys(ctx, defcache.KindFilters))

	b := f.put("b", descriptor.Component, "description: b\n")
	require.Empty(t, f.svc.Caches().Keys(ctx, defcache.KindFilters))
	found, err = f.svc.NewRegistry(nil).Find(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, []descriptor.Descriptor{a, b}, found)
}

func TestInvalidDefinition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, source.Internal)
	a := f.put("a", descriptor.Component, "bogus: 1\n")

	reg := f.svc.NewRegistry(nil)
	_, err := reg.GetDef(ctx, a)
	require.ErrorIs(t, err, definition.ErrInvalidDefinition)
	require.ErrorContains(t, err, `Invalid attribute "bogus"`)

	raw, err := reg.GetRawDef(ctx, a)
	require.NoError(t, err)
	require.NotNil(t, raw)
	require.False(t, raw.IsValid())

	f.put("a", descriptor.Component, "description: fixed\n")
	def, err := reg.GetDef(ctx, a)
	require.NoError(t, err)
	require.True(t, def.IsValid())
}

func TestMissingReference(t *testing.T) {
	f := newFixture(t, source.Internal)
	a := f.put("a", descriptor.Component, "components:\n  - string:ghost\n")

	_, err := f.svc.NewRegistry(nil).GetUID(context.Background(), "", a)
	require.ErrorIs(t, err, definition.ErrDefinitionNotFound)
	require.ErrorContains(t, err, "referenced by markup://string:a")
}

func TestClientLibrariesDeduplicated(t *testing.T) {
	f := newFixture(t, source.Internal)
	a := f.put("a", descriptor.Component, `components:
  - string:b
libraries:
  - name: jquery
    url: https://cdn.example.com/jquery.js
`)
	f.put("b", descriptor.Component, `libraries:
  - name: jquery
    url: https://cdn.example.com/jquery.js
  - name: theme
    url: https://cdn.example.com/theme.css
    type: css
`)

	uid, reg := f.uid(t, a)
	libs := reg.GetClientLibraries(context.Background(), uid)
	require.Equal(t, []definition.ClientLibrary{
		{Name: "jquery", URL: "https://cdn.example.com/jquery.js", Type: "JS"},
		{Name: "theme", URL: "https://cdn.example.com/theme.css", Type: "CSS"},
	}, libs)
	require.Nil(t, reg.GetClientLibraries(context.Background(), "unknown"))
}

func TestAccessChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("private target", func(t *testing.T) {
		f := newFixture(t, source.Internal)
		a := f.put("a", descriptor.Component, "components:\n  - string:b\n")
		f.put("b", descriptor.Component, "access: private\n")

		_, err := f.svc.NewRegistry(nil).GetDef(ctx, a)
		require.ErrorIs(t, err, definition.ErrNoAccess)
		require.ErrorContains(t, err, "disallowed by PRIVATE access")
	})

	t.Run("anonymous request", func(t *testing.T) {
		f := newFixture(t, source.Internal)
		a := f.put("a", descriptor.Component, "components:\n  - string:b\n")
		b := f.put("b", descriptor.Component, "description: needs a session\n")

		anon := f.svc.NewRegistry(registry.NewContext(registry.Unauthenticated()))
		_, err := anon.GetDef(ctx, a)
		require.ErrorIs(t, err, definition.ErrNoAccess)
		require.ErrorContains(t, err, "authentication required")
		require.Contains(t, f.svc.Caches().Keys(ctx, defcache.KindAccess), a.Key()+"|"+b.Key()+"|anon")

		_, err = f.svc.NewRegistry(nil).GetDef(ctx, a)
		require.NoError(t, err)
	})

	t.Run("explicit assert", func(t *testing.T) {
		f := newFixture(t, source.Internal)
		b := f.put("b", descriptor.Component, "access: private\n")
		reg := f.svc.NewRegistry(nil)
		def, err := reg.GetRawDef(ctx, b)
		require.NoError(t, err)

		require.NoError(t, reg.AssertAccess(ctx, f.desc("b", descriptor.Controller), def))
		require.ErrorIs(t, reg.AssertAccess(ctx, descriptor.New("other", "x", descriptor.Component), def), definition.ErrNoAccess)
	})
}

func TestDynamicDefinitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, source.Internal)
	base := f.put("base", descriptor.Component, "description: shared\n")

	dynDesc := f.desc("generated", descriptor.Component)
	dyn, err := defs.Parse(dynDesc, "components:\n  - string:base\n", defs.ParseOptions{})
	require.NoError(t, err)

	rctx := registry.NewContext()
	rctx.AddDynamicDef(dyn)
	reg := f.svc.NewRegistry(rctx)

	require.True(t, reg.Exists(ctx, dynDesc))
	uid, err := reg.GetUID(ctx, "", dynDesc)
	require.NoError(t, err)
	require.Contains(t, reg.GetDependencies(ctx, uid), base)
	require.NotContains(t, strings.Join(f.svc.Caches().Keys(ctx, defcache.KindDeps), ","), dynDesc.Key())

	require.False(t, f.svc.NewRegistry(nil).Exists(ctx, dynDesc))
}

func TestConcurrentRequests(t *testing.T) {
	f := newFixture(t, source.Internal)
	a := f.put("a", descriptor.Component, "components:\n  - string:b\n")
	f.put("b", descriptor.Component, "components:\n  - string:a\n")
	shared := f.svc.NewRegistry(nil)

	const workers = 16
	uids := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg := shared
			if i%2 == 0 {
				reg = f.svc.NewRegistry(nil)
			}
			uids[i], errs[i] = reg.GetUID(context.Background(), "", a)
		}(i)
	}
	wg.Wait()

	for i := range uids {
		require.NoError(t, errs[i])
		require.Equal(t, uids[0], uids[i])
	}
}

// TestDependencySetIsReachability checks random component graphs: every
// root's set is exactly what it reaches, and roots on a common cycle share it.
func TestDependencySetIsReachability(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(r, "components")
		edges := make([][]bool, n)
		for i := range edges {
			edges[i] = make([]bool, n)
			for j := range edges[i] {
				edges[i][j] = rapid.Bool().Draw(r, fmt.Sprintf("edge_%d_%d", i, j))
			}
		}

		loader := source.NewStringLoader("strings", source.Internal)
		svc := newService(loader)
		defer svc.Close()

		descs := make([]descriptor.Descriptor, n)
		for i := range descs {
			descs[i] = descriptor.New("string", fmt.Sprintf("c%d", i), descriptor.Component)
		}
		for i := range descs {
			var b strings.Builder
			fmt.Fprintf(&b, "description: node %d\n", i)
			for j := range descs {
				if edges[i][j] {
					if !strings.Contains(b.String(), "components:") {
						b.WriteString("components:\n")
					}
					fmt.Fprintf(&b, "  - string:c%d\n", j)
				}
			}
			loader.Put(descs[i], b.String())
		}

		reach := func(i int) descriptor.Set {
			seen := descriptor.NewSet(descs[i], auraComponent, auraRoot)
			stack := []int{i}
			visited := map[int]bool{i: true}
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for j := range descs {
					if edges[cur][j] && !visited[j] {
						visited[j] = true
						seen.Add(descs[j])
						stack = append(stack, j)
					}
				}
			}
			return seen
		}

		ctx := context.Background()
		reg := svc.NewRegistry(nil)
		uids := make([]string, n)
		for i, d := range descs {
			uid, err := reg.GetUID(ctx, "", d)
			if err != nil {
				r.Fatalf("GetUID(%s): %v", d, err)
			}
			uids[i] = uid
			got := descriptor.NewSet(reg.GetDependencies(ctx, uid)...)
			if want := reach(i); !got.Equal(want) {
				r.Fatalf("deps of %s = %v, want %v", d, got.Sorted(), want.Sorted())
			}
		}
		for i := range descs {
			for j := range descs {
				if reach(i).Contains(descs[j]) && reach(j).Contains(descs[i]) && uids[i] != uids[j] {
					r.Fatalf("%s and %s share a cycle but have different UIDs", descs[i], descs[j])
				}
			}
		}
	})
}
