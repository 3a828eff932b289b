package descriptor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseFilter_Classification(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		types      []DefType
		str        string
		key        string
		constant   bool
		nsWildcard bool
	}{
		{
			name:     "constant with one type",
			pattern:  "aura:mocked",
			types:    []DefType{Component},
			str:      "markup://aura:mocked",
			key:      "markup://aura:mocked|COMPONENT",
			constant: true,
		},
		{
			name:    "no types is never constant",
			pattern: "markup://test:test_button",
			str:     "markup://test:test_button",
			key:     "markup://test:test_button|*",
		},
		{
			name:    "name wildcard",
			pattern: "aura:*",
			types:   []DefType{Component},
			str:     "markup://aura:*",
			key:     "markup://aura:*|COMPONENT",
		},
		{
			name:       "namespace wildcard",
			pattern:    "*:mocked",
			types:      []DefType{Component},
			str:        "markup://*:mocked",
			key:        "markup://*:mocked|COMPONENT",
			nsWildcard: true,
		},
		{
			name:    "mixed prefixes default to any",
			pattern: "test:button",
			types:   []DefType{Controller, Component},
			str:     "*://test:button",
			key:     "*://test:button|COMPONENT,CONTROLLER",
		},
		{
			name:    "script filter with colon",
			pattern: "js://test:test_button",
			str:     "js://test:test_button",
			key:     "js://test:test_button|*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.pattern, tt.types...)
			require.NoError(t, err)
			require.Equal(t, tt.str, f.String())
			require.Equal(t, tt.key, f.Key())
			require.Equal(t, tt.constant, f.IsConstant())
			require.Equal(t, tt.nsWildcard, f.NamespaceWildcard())
		})
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	for _, pattern := range []string{"", "nonamespace", "markup://test:[", "test:"} {
		_, err := ParseFilter(pattern)
		require.ErrorIs(t, err, ErrInvalidDescriptor, pattern)
	}
	_, err := ParseFilter("test:*", DefType("WIDGET"))
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestFilter_Descriptor(t *testing.T) {
	f := MustParseFilter("aura:mocked", Component)
	d, ok := f.Descriptor()
	require.True(t, ok)
	require.Equal(t, New("aura", "mocked", Component), d)

	_, ok = MustParseFilter("aura:*", Component).Descriptor()
	require.False(t, ok)
}

func TestFilter_Matches(t *testing.T) {
	houseboat := New("ns", "houseboat", Application)
	houseparty := New("ns", "houseparty", Application)
	pantsparty := New("ns", "pantsparty", Application)
	controller := New("ns", "houseboat", Controller)
	all := []Descriptor{houseboat, houseparty, pantsparty, controller}

	count := func(pattern string, types ...DefType) int {
		f := MustParseFilter(pattern, types...)
		n := 0
		for _, d := range all {
			if f.Matches(d) {
				n++
			}
		}
		return n
	}

	require.Equal(t, 3, count("markup://ns:*"))
	require.Equal(t, 2, count("*://ns:houseboat"))
	require.Equal(t, 1, count("*://ns:houseboat", Application))
	require.Equal(t, 1, count("markup://*:houseboat"))
	require.Equal(t, 2, count("markup://ns:house*"))
	require.Equal(t, 2, count("markup://ns:*party*"))
	require.Equal(t, 0, count("markup://NS:HouseBoat"))
	require.Equal(t, 1, count("markup://ns:[hH]ouse[bB]oat"))
	require.Equal(t, 0, count("markup://ns:househunters*"))
	require.Equal(t, 0, count("markup://ns:*notherecaptain"))
	require.Equal(t, 1, count("js://ns.houseboat"))
}

func TestFilter_ConstantAgreesWithMatches(t *testing.T) {
	lower := New("test", "a", Component)
	upper := MustParseFilter("markup://TEST:A", Component)

	d, ok := upper.Descriptor()
	require.True(t, ok)
	require.NotEqual(t, lower, d)
	require.False(t, upper.Matches(lower))
	require.True(t, upper.Matches(d))
}

func TestFilter_MayMatch(t *testing.T) {
	f := MustParseFilter("aura:*", Component)

	require.True(t, f.MayMatch([]string{"markup"}, []string{"aura"}, []DefType{Component}))
	require.True(t, f.MayMatch([]string{"markup"}, []string{"*"}, []DefType{Component, Application}))
	require.False(t, f.MayMatch([]string{"js"}, []string{"aura"}, []DefType{Component}))
	require.False(t, f.MayMatch([]string{"markup"}, []string{"test"}, []DefType{Component}))
	require.False(t, f.MayMatch([]string{"markup"}, []string{"aura"}, []DefType{Style}))

	wide := MustParseFilter("*://*:*")
	require.True(t, wide.MayMatch([]string{"css"}, []string{"x"}, []DefType{Style}))
	require.False(t, wide.MayMatch([]string{"css"}, []string{"x"}, nil))
}

func TestFilter_ConstantMatchesOnlyItsDescriptor(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		ident := rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`)
		ns := ident.Draw(r, "ns")
		name := ident.Draw(r, "name")
		other := ident.Draw(r, "other")
		defType := rapid.SampledFrom(MarkupDefTypes).Draw(r, "type")

		f := MustParseFilter(ns+":"+name, defType)
		d, ok := f.Descriptor()
		if !ok || !f.Matches(d) {
			r.Fatalf("constant filter %s does not match its own descriptor", f)
		}
		if other != name && f.Matches(New(ns, other, defType)) {
			r.Fatalf("constant filter %s matched %s:%s", f, ns, other)
		}
	})
}
