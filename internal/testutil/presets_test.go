package testutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/defreg/internal/builtin"
	"github.com/zjrosen/defreg/internal/domain/definition"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/registry"
	"github.com/zjrosen/defreg/internal/source"
	"github.com/zjrosen/defreg/internal/subregistry"
	"github.com/zjrosen/defreg/internal/testutil"
)

func newService(t *testing.T, l source.Loader) *registry.Service {
	t.Helper()
	svc := registry.NewService([]registry.SubRegistry{
		subregistry.NewSourceRegistry(l),
		subregistry.NewSourceRegistry(builtin.Loader()),
		subregistry.NewTypeRegistry(),
	}, registry.ServiceOptions{})
	t.Cleanup(svc.Close)
	return svc
}

func TestPreset_StandardBundlesCompile(t *testing.T) {
	root := testutil.NewBuilder(t).WithStandardBundles().Build()
	svc := newService(t, source.NewDirLoader("ui", root, source.Internal))

	ctx := context.Background()
	reg := svc.NewRegistry(nil)
	shell := descriptor.New("ui", "shell", descriptor.Application)

	uid, err := reg.GetUID(ctx, "", shell)
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	deps := descriptor.NewSet(reg.GetDependencies(ctx, uid)...)
	for _, d := range []descriptor.Descriptor{
		shell,
		descriptor.New("ui", "card", descriptor.Component),
		descriptor.New("ui", "panel", descriptor.Component),
		descriptor.New("ui", "button", descriptor.Component),
		descriptor.New("ui", "button", descriptor.Controller),
		descriptor.New("ui", "button", descriptor.Helper),
		descriptor.New("ui", "button", descriptor.Style),
		descriptor.New("ui", "icon", descriptor.Component),
		descriptor.New("ui", "clicked", descriptor.Event),
		descriptor.New("aura", "application", descriptor.Application),
	} {
		require.True(t, deps.Contains(d), "missing %s", d)
	}

	require.ElementsMatch(t, []definition.ClientLibrary{
		{URL: "/assets/theme.css", Type: "CSS"},
		{Name: "jquery", Type: "JS"},
	}, reg.GetClientLibraries(ctx, uid))
}

func TestPreset_CycleCompiles(t *testing.T) {
	l := source.NewStringLoader("ui", source.Internal, "ui")
	testutil.NewBuilder(t).WithCycle().LoadInto(l)
	svc := newService(t, l)

	ctx := context.Background()
	reg := svc.NewRegistry(nil)
	uid, err := reg.GetUID(ctx, "", descriptor.New("ui", "a", descriptor.Component))
	require.NoError(t, err)

	deps := descriptor.NewSet(reg.GetDependencies(ctx, uid)...)
	require.True(t, deps.Contains(descriptor.New("ui", "b", descriptor.Component)))
}
