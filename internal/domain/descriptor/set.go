package descriptor

import "sort"

// Set is an unordered collection of descriptors.
type Set map[Descriptor]struct{}

// NewSet returns a set holding ds.
func NewSet(ds ...Descriptor) Set {
	s := make(Set, len(ds))
	for _, d := range ds {
		s.Add(d)
	}
	return s
}

// Add inserts d. The zero descriptor is ignored.
func (s Set) Add(d Descriptor) {
	if d.IsZero() {
		return
	}
	s[d] = struct{}{}
}

// AddAll inserts every element of other.
func (s Set) AddAll(other Set) {
	for d := range other {
		s[d] = struct{}{}
	}
}

// Contains reports membership.
func (s Set) Contains(d Descriptor) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of elements.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the elements ordered by Key.
func (s Set) Sorted() []Descriptor {
	out := make([]Descriptor, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	Sort(out)
	return out
}

// Equal reports whether both sets hold the same descriptors.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for d := range s {
		if !other.Contains(d) {
			return false
		}
	}
	return true
}

// Sort orders ds by Key in place.
func Sort(ds []Descriptor) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Key() < ds[j].Key() })
}
