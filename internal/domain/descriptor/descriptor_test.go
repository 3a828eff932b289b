package descriptor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		defType   DefType
		want      Descriptor
		qualified string
		wantErr   error
	}{
		{
			name:      "markup with prefix",
			input:     "markup://test:button",
			defType:   Component,
			want:      Descriptor{Prefix: "markup", Namespace: "test", Name: "button", DefType: Component},
			qualified: "markup://test:button",
		},
		{
			name:      "markup without prefix",
			input:     "ui:outputNumber",
			defType:   Application,
			want:      Descriptor{Prefix: "markup", Namespace: "ui", Name: "outputNumber", DefType: Application},
			qualified: "markup://ui:outputNumber",
		},
		{
			name:      "script with dot separator",
			input:     "js://test.test_button",
			defType:   Controller,
			want:      Descriptor{Prefix: "js", Namespace: "test", Name: "test_button", DefType: Controller},
			qualified: "js://test.test_button",
		},
		{
			name:      "script accepts colon separator",
			input:     "js://test:test_button",
			defType:   Renderer,
			want:      Descriptor{Prefix: "js", Namespace: "test", Name: "test_button", DefType: Renderer},
			qualified: "js://test.test_button",
		},
		{
			name:      "type with dotted namespace",
			input:     "java://java.lang.String",
			defType:   Type,
			want:      Descriptor{Prefix: "java", Namespace: "java.lang", Name: "String", DefType: Type},
			qualified: "java://java.lang.String",
		},
		{name: "empty", input: "", defType: Component, wantErr: ErrInvalidDescriptor},
		{name: "no namespace", input: "button", defType: Component, wantErr: ErrInvalidDescriptor},
		{name: "empty name", input: "test:", defType: Component, wantErr: ErrInvalidDescriptor},
		{name: "bad name", input: "test:bad-name", defType: Component, wantErr: ErrInvalidDescriptor},
		{name: "dotted namespace outside types", input: "a.b:c", defType: Component, wantErr: ErrInvalidDescriptor},
		{name: "unknown type", input: "test:button", defType: DefType("WIDGET"), wantErr: ErrInvalidDescriptor},
		{name: "bad prefix", input: "Mark Up://test:button", defType: Component, wantErr: ErrInvalidDescriptor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, tt.defType)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.qualified, got.QualifiedName())
			require.Equal(t, tt.qualified, got.String())
		})
	}
}

func TestDescriptor_KeyDistinguishesTypes(t *testing.T) {
	controller := MustParse("js://test.button", Controller)
	renderer := MustParse("js://test.button", Renderer)

	require.Equal(t, controller.QualifiedName(), renderer.QualifiedName())
	require.NotEqual(t, controller.Key(), renderer.Key())
	require.Equal(t, "CONTROLLER@js://test.button", controller.Key())

	back, err := ParseKey(controller.Key())
	require.NoError(t, err)
	require.Equal(t, controller, back)

	_, err = ParseKey("no-type-here")
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestDescriptor_ZeroValue(t *testing.T) {
	var d Descriptor
	require.True(t, d.IsZero())
	require.Equal(t, "<none>", d.String())
	require.False(t, New("test", "button", Component).IsZero())
}

func TestDescriptor_BundleMembers(t *testing.T) {
	cmp := New("test", "button", Component)
	members := cmp.BundleMembers()

	require.Len(t, members, 5)
	require.Contains(t, members, New("test", "button", Controller))
	require.Contains(t, members, New("test", "button", Helper))
	require.Contains(t, members, New("test", "button", Renderer))
	require.Contains(t, members, New("test", "button", Provider))
	require.Contains(t, members, New("test", "button", Style))
	for _, m := range members {
		require.True(t, cmp.SameBundle(m))
		require.Equal(t, cmp, m.Bundle(Component))
	}

	require.Nil(t, New("test", "button", Style).BundleMembers())
}

func TestParseDefType(t *testing.T) {
	got, err := ParseDefType("component")
	require.NoError(t, err)
	require.Equal(t, Component, got)

	_, err = ParseDefType("widget")
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestDefType_DefaultPrefix(t *testing.T) {
	require.Equal(t, MarkupPrefix, Application.DefaultPrefix())
	require.Equal(t, JSPrefix, Helper.DefaultPrefix())
	require.Equal(t, CSSPrefix, Style.DefaultPrefix())
	require.Equal(t, JavaPrefix, Type.DefaultPrefix())
	require.True(t, Event.IsMarkup())
	require.False(t, Provider.IsMarkup())
}

func TestSet(t *testing.T) {
	a := New("test", "a", Component)
	b := New("test", "b", Component)

	s := NewSet(b, a, a, Descriptor{})
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(a))
	require.Equal(t, []Descriptor{a, b}, s.Sorted())
	require.True(t, s.Equal(NewSet(a, b)))
	require.False(t, s.Equal(NewSet(a)))

	other := NewSet(New("test", "c", Component))
	s.AddAll(other)
	require.Equal(t, 3, s.Len())
}
