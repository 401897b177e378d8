package diag

import (
	"cmp"
	"slices"
	"strings"
)

// Bag collects diagnostics up to an optional limit.
type Bag struct {
	items []Diagnostic
	max   int // 0 - без ограничения
}

func NewBag(max int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max, 64)), max: max}
}

// Add returns false once the limit is reached; d is dropped then.
func (b *Bag) Add(d Diagnostic) bool {
	if b.full() {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) full() bool { return b.max > 0 && len(b.items) >= b.max }

// HasErrors сообщает, есть ли хотя бы одна ошибка.
func (b *Bag) HasErrors() bool { return b.has(SevError) }

// HasWarnings сообщает, есть ли предупреждение или что-то серьёзнее.
func (b *Bag) HasWarnings() bool { return b.has(SevWarning) }

func (b *Bag) has(floor Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool {
		return d.Severity.AtLeast(floor)
	})
}

func (b *Bag) Len() int { return len(b.items) }

// Items shares the backing array; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends everything from other. The limit grows to fit: both bags
// were already bounded on their own.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	if b.max > 0 {
		b.max = max(b.max, len(b.items))
	}
}

// Sort orders by path, then severity (errors first), code, message.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			strings.Compare(x.Path, y.Path),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
			strings.Compare(x.Message, y.Message),
		)
	})
}

// Dedup keeps the first of diagnostics with equal code, path and message.
func (b *Bag) Dedup() {
	type key struct {
		code      Code
		path, msg string
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Path, d.Message}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
