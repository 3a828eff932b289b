package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/defreg/internal/defs"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/source"
)

func TestLoader_ServesBaseTypes(t *testing.T) {
	ctx := context.Background()
	l := Loader()

	require.Equal(t, []string{Namespace}, l.Namespaces())
	require.Equal(t, source.Internal, l.Access())

	for _, d := range []descriptor.Descriptor{defs.RootComponent, defs.BaseComponent, defs.BaseApp} {
		src, err := l.Get(ctx, d)
		require.NoError(t, err, d.String())

		m, err := defs.ParseMarkup(d, src.Content, nil)
		require.NoError(t, err)
		require.NoError(t, m.ValidateDefinition())
		require.True(t, m.Access().IsGlobal())
		require.True(t, m.Extensible)
	}
}

func TestLoader_Chain(t *testing.T) {
	ctx := context.Background()
	l := Loader()

	supers := map[descriptor.Descriptor]descriptor.Descriptor{
		defs.BaseApp:       defs.BaseComponent,
		defs.BaseComponent: defs.RootComponent,
		defs.RootComponent: {},
	}
	for d, want := range supers {
		src, err := l.Get(ctx, d)
		require.NoError(t, err)
		m, err := defs.ParseMarkup(d, src.Content, nil)
		require.NoError(t, err)
		require.Equal(t, want, m.Extends, d.String())
	}
}
