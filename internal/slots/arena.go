package slots

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

type slot[T any] struct {
	generation uint32
	occupied   bool
	value      T
}

// put меняет содержимое слота и всегда увеличивает поколение.
func (s *slot[T]) put(value T, occupied bool) (T, bool) {
	s.generation++
	prev, had := s.value, s.occupied
	s.value, s.occupied = value, occupied
	return prev, had
}

// Arena stores values in reusable slots and hands out generation-checked IDs.
// An ID stays invalid once its value was extracted, even after the
// slot is reused. The zero Arena is ready to use.
//
// Generations are uint32 and wrap after 2^32 transitions of one slot;
// a wrapped slot may accept an ID it issued long ago.
//
// Arena is not safe for concurrent use.
type Arena[T any] struct {
	data []slot[T]
}

// NewArena creates an arena with capacity for capHint slots.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]slot[T], 0, capHint)}
}

// Collect builds an arena from values, in order.
func Collect[T any](values ...T) *Arena[T] {
	a := NewArena[T](uint(len(values)))
	a.PushAll(values...)
	return a
}

// Push stores value in the first free slot (appending one if none is free)
// and returns its ID.
func (a *Arena[T]) Push(value T) ID {
	idx := a.freeSlot()
	s := &a.data[idx]
	s.put(value, true)
	return ID{Generation: s.generation, Slot: toSlot(idx)}
}

// PushAll pushes every value and returns their IDs in the same order.
func (a *Arena[T]) PushAll(values ...T) []ID {
	ids := make([]ID, 0, len(values))
	for _, v := range values {
		ids = append(ids, a.Push(v))
	}
	return ids
}

// Owns reports whether id refers to a value currently stored in the arena.
func (a *Arena[T]) Owns(id ID) bool {
	if a == nil || int(id.Slot) >= len(a.data) {
		return false
	}
	s := &a.data[id.Slot]
	return s.occupied && s.generation == id.Generation
}

// Get returns the value for id; ok is false if id is not owned.
func (a *Arena[T]) Get(id ID) (value T, ok bool) {
	if !a.Owns(id) {
		return value, false
	}
	return a.data[id.Slot].value, true
}

// GetPtr returns a pointer to the stored value or nil if id is not owned.
// The pointer is valid until the next Push (which may grow the storage).
func (a *Arena[T]) GetPtr(id ID) *T {
	if !a.Owns(id) {
		return nil
	}
	return &a.data[id.Slot].value
}

// GetAll returns values for the owned IDs, skipping the rest.
func (a *Arena[T]) GetAll(ids []ID) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := a.Get(id); ok {
			out = append(out, v)
		}
	}
	return out
}

// Extract removes the value for id and returns it. The slot becomes free.
func (a *Arena[T]) Extract(id ID) (value T, ok bool) {
	if !a.Owns(id) {
		return value, false
	}
	var zero T
	return a.data[id.Slot].put(zero, false)
}

// ExtractAll extracts every owned ID and returns the removed values.
func (a *Arena[T]) ExtractAll(ids []ID) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := a.Extract(id); ok {
			out = append(out, v)
		}
	}
	return out
}

// IDAt returns the current ID of an occupied slot.
func (a *Arena[T]) IDAt(slotIdx int) (ID, bool) {
	if a == nil || slotIdx < 0 || slotIdx >= len(a.data) || !a.data[slotIdx].occupied {
		return NoID, false
	}
	return ID{Generation: a.data[slotIdx].generation, Slot: toSlot(slotIdx)}, true
}

// Find returns IDs of stored values matching pred, in ascending slot order.
// Callers rely on that order.
func (a *Arena[T]) Find(pred func(*T) bool) []ID {
	if a == nil {
		return nil
	}
	var out []ID
	for i := range a.data {
		s := &a.data[i]
		if s.occupied && pred(&s.value) {
			out = append(out, ID{Generation: s.generation, Slot: toSlot(i)})
		}
	}
	return out
}

// IDs returns IDs of all stored values in slot order.
func (a *Arena[T]) IDs() []ID {
	return a.Find(func(*T) bool { return true })
}

// SlotCount reports the number of slots, occupied or not.
func (a *Arena[T]) SlotCount() int {
	if a == nil {
		return 0
	}
	return len(a.data)
}

// Len reports the number of stored values.
func (a *Arena[T]) Len() int {
	if a == nil {
		return 0
	}
	n := 0
	for i := range a.data {
		if a.data[i].occupied {
			n++
		}
	}
	return n
}

// Empty reports whether no value is stored.
func (a *Arena[T]) Empty() bool {
	if a == nil {
		return true
	}
	for i := range a.data {
		if a.data[i].occupied {
			return false
		}
	}
	return true
}

// All yields (slot, value) pairs of stored values in slot order.
func (a *Arena[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if a == nil {
			return
		}
		for i := range a.data {
			if a.data[i].occupied && !yield(i, a.data[i].value) {
				return
			}
		}
	}
}

// Values yields stored values in slot order.
func (a *Arena[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range a.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// AllPtr yields (slot, pointer) pairs for in-place mutation. Pushing while
// iterating is not allowed.
func (a *Arena[T]) AllPtr() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		if a == nil {
			return
		}
		for i := range a.data {
			if a.data[i].occupied && !yield(i, &a.data[i].value) {
				return
			}
		}
	}
}

// Drain yields and removes stored values in slot order. Values not reached
// (because iteration stopped early) stay in the arena.
func (a *Arena[T]) Drain() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if a == nil {
			return
		}
		var zero T
		for i := range a.data {
			if !a.data[i].occupied {
				continue
			}
			v, _ := a.data[i].put(zero, false)
			if !yield(i, v) {
				return
			}
		}
	}
}

// Clone returns a copy of the arena with identical slots and generations,
// so IDs from a are valid for the copy. Values are copied shallowly.
func (a *Arena[T]) Clone() *Arena[T] {
	if a == nil {
		return NewArena[T](0)
	}
	out := &Arena[T]{data: make([]slot[T], len(a.data))}
	copy(out.data, a.data)
	return out
}

func (a *Arena[T]) freeSlot() int {
	for i := range a.data {
		if !a.data[i].occupied {
			return i
		}
	}
	a.data = append(a.data, slot[T]{})
	return len(a.data) - 1
}

func toSlot(i int) uint32 {
	v, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("slots arena overflow: %w", err))
	}
	return v
}
