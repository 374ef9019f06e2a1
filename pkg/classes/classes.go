// Package classes parses free-text "applicable classes" strings into
// normalized sets and decides whether two class lists overlap. The
// asymmetric empty-set rules mirror how the curriculum template and the
// submission table use the field: a template with no class restriction
// applies to everyone, a submission with no classes is simply unassigned.
package classes

import (
	"sort"
	"strings"
)

// Set is a normalized set of class-name tokens.
type Set map[string]struct{}

// Parse splits a free-text class list into a Set. Both the ASCII and
// fullwidth comma are separators; quoting artifacts are stripped, tokens
// are trimmed, and empty tokens are discarded. Empty input yields the
// empty set.
func Parse(text string) Set {
	set := Set{}
	if text == "" {
		return set
	}

	clean := strings.NewReplacer(`"`, "", `'`, "", "，", ",").Replace(text)
	for _, token := range strings.Split(clean, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

// Of builds a Set from individual class names.
func Of(names ...string) Set {
	set := make(Set, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether the set holds the given class name.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Empty reports whether the set has no members.
func (s Set) Empty() bool {
	return len(s) == 0
}

// Len returns the number of classes in the set.
func (s Set) Len() int {
	return len(s)
}

// List returns the class names in sorted order.
func (s Set) List() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the set in its external comma-joined form,
// order-insensitive input notwithstanding: output is always sorted.
func (s Set) String() string {
	return strings.Join(s.List(), ",")
}

// Intersects reports whether two sets share at least one class.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for name := range small {
		if large.Contains(name) {
			return true
		}
	}
	return false
}

// Overlaps decides whether a record's class list falls under a template
// entry's default class list. An empty default means "no restriction"
// and matches everything; an empty candidate against a non-empty default
// means "not yet assigned to any class" and matches nothing.
func Overlaps(defaults, candidates Set) bool {
	if defaults.Empty() {
		return true
	}
	if candidates.Empty() {
		return false
	}
	return defaults.Intersects(candidates)
}

// OverlapsText is Overlaps on raw class-list strings.
func OverlapsText(defaults, candidates string) bool {
	return Overlaps(Parse(defaults), Parse(candidates))
}
