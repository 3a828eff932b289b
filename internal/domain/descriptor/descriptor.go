package descriptor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidDescriptor is returned for malformed descriptor strings.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

var (
	identPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	typeNSPattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	prefixPattern   = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	prefixSeparator = "://"
)

// Descriptor identifies one definition.
type Descriptor struct {
	Prefix    string
	Namespace string
	Name      string
	DefType   DefType
}

// New builds a descriptor using t's default prefix.
func New(namespace, name string, t DefType) Descriptor {
	return Descriptor{Prefix: t.DefaultPrefix(), Namespace: namespace, Name: name, DefType: t}
}

// Parse reads "prefix://ns:name", "prefix://ns.name" or "ns:name".
// A missing prefix defaults to t's default prefix.
func Parse(s string, t DefType) (Descriptor, error) {
	if !t.Valid() {
		return Descriptor{}, fmt.Errorf("%w: unknown def type %q", ErrInvalidDescriptor, t)
	}

	prefix, rest := t.DefaultPrefix(), strings.TrimSpace(s)
	if i := strings.Index(rest, prefixSeparator); i >= 0 {
		prefix, rest = rest[:i], rest[i+len(prefixSeparator):]
	}
	if !prefixPattern.MatchString(prefix) {
		return Descriptor{}, fmt.Errorf("%w: bad prefix in %q", ErrInvalidDescriptor, s)
	}

	ns, name, ok := splitName(rest)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q has no namespace", ErrInvalidDescriptor, s)
	}
	if !identPattern.MatchString(name) {
		return Descriptor{}, fmt.Errorf("%w: bad name in %q", ErrInvalidDescriptor, s)
	}
	nsPattern := identPattern
	if t == Type {
		nsPattern = typeNSPattern
	}
	if !nsPattern.MatchString(ns) {
		return Descriptor{}, fmt.Errorf("%w: bad namespace in %q", ErrInvalidDescriptor, s)
	}

	return Descriptor{Prefix: prefix, Namespace: ns, Name: name, DefType: t}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string, t DefType) Descriptor {
	d, err := Parse(s, t)
	if err != nil {
		panic(err)
	}
	return d
}

// splitName splits on the first colon, or else on the last dot.
func splitName(s string) (ns, name string, ok bool) {
	if i := strings.Index(s, ":"); i >= 0 {
		return s[:i], s[i+1:], i > 0 && i < len(s)-1
	}
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[:i], s[i+1:], i > 0 && i < len(s)-1
	}
	return "", "", false
}

// IsZero reports whether d is the "none" descriptor.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

// DescriptorName is the namespace and name joined with the prefix's separator.
func (d Descriptor) DescriptorName() string {
	return d.Namespace + separator(d.Prefix) + d.Name
}

// QualifiedName is prefix://namespace<sep>name.
func (d Descriptor) QualifiedName() string {
	return d.Prefix + prefixSeparator + d.DescriptorName()
}

// String returns the qualified name.
func (d Descriptor) String() string {
	if d.IsZero() {
		return "<none>"
	}
	return d.QualifiedName()
}

// Key is unique per definition and used for every cache key.
func (d Descriptor) Key() string {
	return string(d.DefType) + "@" + d.QualifiedName()
}

// ParseKey reverses Key.
func ParseKey(key string) (Descriptor, error) {
	t, qualified, ok := strings.Cut(key, "@")
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: key %q", ErrInvalidDescriptor, key)
	}
	return Parse(qualified, DefType(t))
}

// Bundle returns the markup descriptor of type t owning d's bundle.
func (d Descriptor) Bundle(t DefType) Descriptor {
	return Descriptor{Prefix: MarkupPrefix, Namespace: d.Namespace, Name: d.Name, DefType: t}
}

// SameBundle reports whether d and other share namespace and name.
func (d Descriptor) SameBundle(other Descriptor) bool {
	return d.Namespace == other.Namespace && d.Name == other.Name
}

// BundleMembers lists the script and style descriptors that can belong to
// d's bundle. It returns nil for non-markup descriptors.
func (d Descriptor) BundleMembers() []Descriptor {
	if !d.DefType.IsMarkup() {
		return nil
	}
	members := make([]Descriptor, 0, len(ScriptDefTypes)+1)
	for _, t := range ScriptDefTypes {
		members = append(members, Descriptor{Prefix: JSPrefix, Namespace: d.Namespace, Name: d.Name, DefType: t})
	}
	members = append(members, Descriptor{Prefix: CSSPrefix, Namespace: d.Namespace, Name: d.Name, DefType: Style})
	return members
}
