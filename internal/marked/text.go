// Package marked implements a text buffer annotated with nestable byte-range
// marks. Marks live in a slots.Arena, so their IDs survive edits that remove
// other marks, and every content replacement rebases the remaining ranges.
//
// Containment is computed from ranges on demand; marks hold no parent or
// child links.
package marked

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"glslx/internal/slots"
)

var (
	// ErrInvalidRange is returned by SetMark for ranges outside the text.
	ErrInvalidRange = errors.New("invalid mark range")
	// ErrMarkNotFound is returned when an edit references a removed mark.
	ErrMarkNotFound = errors.New("mark not found")
)

// Text is a string plus a set of marks over it.
type Text[F comparable] struct {
	text  string
	marks *slots.Arena[Mark[F]]
}

// New creates a Text without marks.
func New[F comparable](text string) *Text[F] {
	return &Text[F]{
		text:  text,
		marks: slots.NewArena[Mark[F]](0),
	}
}

// Text returns the current content.
func (t *Text[F]) Text() string { return t.text }

// Len returns the content length in bytes.
func (t *Text[F]) Len() int { return len(t.text) }

// Mark returns the mark with the given id.
func (t *Text[F]) Mark(id slots.ID) (Mark[F], bool) {
	return t.marks.Get(id)
}

// Content returns the text covered by the mark.
func (t *Text[F]) Content(id slots.ID) (string, bool) {
	m, ok := t.marks.Get(id)
	if !ok {
		return "", false
	}
	return t.text[m.Start:m.End], true
}

// Marks iterates over live marks in slot order.
func (t *Text[F]) Marks() iter.Seq2[slots.ID, Mark[F]] {
	return func(yield func(slots.ID, Mark[F]) bool) {
		for slot, m := range t.marks.All() {
			id, _ := t.marks.IDAt(slot)
			if !yield(id, m) {
				return
			}
		}
	}
}

// MarkIDs returns IDs of all marks in slot order.
func (t *Text[F]) MarkIDs() []slots.ID { return t.marks.IDs() }

// MarkCount returns the number of marks.
func (t *Text[F]) MarkCount() int { return t.marks.Len() }

// HasMarks reports whether at least one mark exists.
func (t *Text[F]) HasMarks() bool { return !t.marks.Empty() }

// SetMark tags [start, end) with flag.
func (t *Text[F]) SetMark(flag F, start, end int) (slots.ID, error) {
	if end > len(t.text) {
		return slots.NoID, fmt.Errorf("%w: [%d,%d) points outside of text (len %d)", ErrInvalidRange, start, end, len(t.text))
	}
	if end < start || start < 0 {
		return slots.NoID, fmt.Errorf("%w: [%d,%d) has negative size", ErrInvalidRange, start, end)
	}
	return t.marks.Push(Mark[F]{Flag: flag, Start: start, End: end}), nil
}

// FindMarks returns IDs of marks matching pred, in slot order.
func (t *Text[F]) FindMarks(pred func(Mark[F]) bool) []slots.ID {
	return t.marks.Find(func(m *Mark[F]) bool { return pred(*m) })
}

// MarksByFlag returns IDs of marks carrying flag, in slot order.
func (t *Text[F]) MarksByFlag(flag F) []slots.ID {
	return t.FindMarks(func(m Mark[F]) bool { return m.Flag == flag })
}

// SubMarks returns IDs of marks nested inside id's range, id excluded.
func (t *Text[F]) SubMarks(id slots.ID) []slots.ID {
	outer, ok := t.marks.Get(id)
	if !ok {
		return nil
	}
	nested := t.FindMarks(func(m Mark[F]) bool { return outer.Contains(m) })
	return slices.DeleteFunc(nested, func(other slots.ID) bool { return other == id })
}

// RemoveMark removes id; with cascade it first removes every mark nested in id.
func (t *Text[F]) RemoveMark(id slots.ID, cascade bool) (Mark[F], bool) {
	if cascade {
		t.RemoveSubMarks(id)
	}
	return t.marks.Extract(id)
}

// RemoveSubMarks removes every mark nested inside id, keeping id itself.
func (t *Text[F]) RemoveSubMarks(id slots.ID) {
	t.marks.ExtractAll(t.SubMarks(id))
}

// ShiftMarks adds delta to every mark endpoint lying after pivot. Start and
// End are checked independently, so a mark straddling pivot is resized
// rather than moved. For shrinking edits (delta < 0) a moved endpoint is
// clamped at pivot instead of crossing it; this only shows on marks that
// partially overlap the removed range.
func (t *Text[F]) ShiftMarks(pivot, delta int) {
	for _, m := range t.marks.AllPtr() {
		if m.Start > pivot {
			m.Start = max(pivot, m.Start+delta)
		}
		if m.End > pivot {
			m.End = max(pivot, m.End+delta)
		}
	}
}

// ReplaceMarkContent replaces the text under id with replacement's text.
// Marks nested in id are dropped, marks after it are rebased, and the
// replacement's marks are imported as children of id. Afterwards id spans
// exactly the inserted text. A nil replacement means empty text.
func (t *Text[F]) ReplaceMarkContent(id slots.ID, replacement *Text[F]) error {
	m, ok := t.marks.Get(id)
	if !ok {
		return fmt.Errorf("%w: %v", ErrMarkNotFound, id)
	}
	start, end := m.Start, m.End

	var insert string
	if replacement != nil {
		insert = replacement.text
	}
	delta := len(insert) - (end - start)

	t.RemoveSubMarks(id)
	t.ShiftMarks(start, delta)
	t.text = t.text[:start] + insert + t.text[end:]

	if replacement != nil {
		for _, child := range replacement.marks.All() {
			t.marks.Push(Mark[F]{
				Flag:  child.Flag,
				Start: child.Start + start,
				End:   child.End + start,
			})
		}
	}

	self := t.marks.GetPtr(id)
	self.Start = start
	self.End = start + len(insert)
	return nil
}

// DeleteMarkContent empties the text under id, keeping the mark.
func (t *Text[F]) DeleteMarkContent(id slots.ID) error {
	return t.ReplaceMarkContent(id, nil)
}

// DeleteMarkAndContent empties the text under id and removes the mark.
func (t *Text[F]) DeleteMarkAndContent(id slots.ID) error {
	if err := t.DeleteMarkContent(id); err != nil {
		return err
	}
	t.RemoveMark(id, false)
	return nil
}

// Clone returns an independent copy; IDs of t stay valid for the copy.
func (t *Text[F]) Clone() *Text[F] {
	return &Text[F]{
		text:  t.text,
		marks: t.marks.Clone(),
	}
}
