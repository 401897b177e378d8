// Package rules holds the expansion policy: a fixed set of knobs where every
// value remembers whether it was set explicitly or is a default. Layers are
// combined with Merge; an explicit value always beats a default one.
package rules

import "fmt"

// Rule is a policy value tagged as default or explicit.
type Rule[T comparable] struct {
	explicit bool
	value    T
}

// Default wraps v as a default value.
func Default[T comparable](v T) Rule[T] { return Rule[T]{value: v} }

// Explicit wraps v as an explicitly set value.
func Explicit[T comparable](v T) Rule[T] { return Rule[T]{explicit: true, value: v} }

// Value returns the wrapped value.
func (r Rule[T]) Value() T { return r.value }

// IsDefault reports whether the value was not set explicitly.
func (r Rule[T]) IsDefault() bool { return !r.explicit }

// Merge combines r with a later layer: an explicit other wins, otherwise an
// explicit r wins, otherwise (both default) other wins.
func (r Rule[T]) Merge(other Rule[T]) Rule[T] {
	switch {
	case other.explicit:
		return other
	case r.explicit:
		return r
	default:
		return other
	}
}

// Add merges other into r in place.
func (r *Rule[T]) Add(other Rule[T]) {
	*r = r.Merge(other)
}

// Set stores v as an explicit value.
func (r *Rule[T]) Set(v T) {
	r.explicit = true
	r.value = v
}

func (r Rule[T]) String() string {
	if r.explicit {
		return fmt.Sprint(r.value)
	}
	return fmt.Sprintf("%v (default)", r.value)
}
