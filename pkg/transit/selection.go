package transit

import (
	"maps"
	"slices"
)

// Selection is the set of line names the user has chosen to display.
// It is mutated in place by its owner; the zero value is not usable, use
// NewSelection.
type Selection map[string]struct{}

// NewSelection returns a selection containing names.
func NewSelection(names ...string) Selection {
	s := make(Selection, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is selected.
func (s Selection) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add selects name.
func (s Selection) Add(name string) { s[name] = struct{}{} }

// Remove deselects name.
func (s Selection) Remove(name string) { delete(s, name) }

// Toggle flips name and reports whether it is selected afterwards.
func (s Selection) Toggle(name string) bool {
	if s.Has(name) {
		delete(s, name)
		return false
	}
	s[name] = struct{}{}
	return true
}

// Clear deselects everything.
func (s Selection) Clear() { clear(s) }

// Set replaces the contents with names.
func (s Selection) Set(names ...string) {
	clear(s)
	for _, n := range names {
		s[n] = struct{}{}
	}
}

// Names returns the selected names in sorted order.
func (s Selection) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	return maps.Clone(s)
}
