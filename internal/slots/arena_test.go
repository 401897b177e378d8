package slots

import (
	"slices"
	"testing"
)

func TestArenaPushGet(t *testing.T) {
	a := NewArena[string](0)
	id1 := a.Push("a")
	id2 := a.Push("b")

	if id1.Slot != 0 || id2.Slot != 1 {
		t.Fatalf("unexpected slots: %v %v", id1, id2)
	}
	if v, ok := a.Get(id1); !ok || v != "a" {
		t.Fatalf("Get(id1) = %q, %v; want \"a\", true", v, ok)
	}
	if v, ok := a.Get(id2); !ok || v != "b" {
		t.Fatalf("Get(id2) = %q, %v; want \"b\", true", v, ok)
	}
	if a.Len() != 2 || a.SlotCount() != 2 {
		t.Fatalf("Len=%d SlotCount=%d, want 2/2", a.Len(), a.SlotCount())
	}
}

// Старый ID не должен оживать после повторного использования слота.
func TestArenaReusedSlotInvalidatesOldID(t *testing.T) {
	a := NewArena[int](0)
	i1 := a.Push(10)
	if v, ok := a.Extract(i1); !ok || v != 10 {
		t.Fatalf("Extract(i1) = %d, %v", v, ok)
	}
	i2 := a.Push(20)

	if i1.Slot != i2.Slot {
		t.Fatalf("expected slot reuse, got %v and %v", i1, i2)
	}
	if a.Owns(i1) {
		t.Fatal("old id must not be owned after reuse")
	}
	if !a.Owns(i2) {
		t.Fatal("new id must be owned")
	}
	if i2.Generation <= i1.Generation {
		t.Fatalf("generation must grow: %d -> %d", i1.Generation, i2.Generation)
	}
	if _, ok := a.Get(i1); ok {
		t.Fatal("Get with stale id must miss")
	}
	if p := a.GetPtr(i1); p != nil {
		t.Fatal("GetPtr with stale id must be nil")
	}
}

func TestArenaInvalidIDsAreSoftMisses(t *testing.T) {
	a := NewArena[int](0)
	a.Push(1)

	for _, id := range []ID{NoID, {Generation: 1, Slot: 5}, {Generation: 7, Slot: 0}} {
		if a.Owns(id) {
			t.Fatalf("Owns(%v) = true", id)
		}
		if _, ok := a.Extract(id); ok {
			t.Fatalf("Extract(%v) succeeded", id)
		}
	}
	var nilArena *Arena[int]
	if nilArena.Owns(ID{Generation: 1}) || nilArena.Len() != 0 || !nilArena.Empty() {
		t.Fatal("nil arena must behave as empty")
	}
}

func TestArenaFindOrderIsStable(t *testing.T) {
	a := NewArena[int](0)
	ids := a.PushAll(1, 2, 3, 4, 5)
	a.Extract(ids[1])
	a.Extract(ids[3])
	a.Push(6) // lands in slot 1
	a.Push(7) // lands in slot 3
	a.Push(8) // appended

	got := a.Find(func(*int) bool { return true })
	slotsGot := make([]uint32, 0, len(got))
	for _, id := range got {
		slotsGot = append(slotsGot, id.Slot)
	}
	if !slices.IsSorted(slotsGot) {
		t.Fatalf("Find must return ascending slots, got %v", slotsGot)
	}

	var values []int
	for v := range a.Values() {
		values = append(values, v)
	}
	want := []int{1, 6, 3, 7, 5, 8}
	if !slices.Equal(values, want) {
		t.Fatalf("Values() = %v, want %v", values, want)
	}

	even := a.Find(func(v *int) bool { return *v%2 == 0 })
	if got := a.GetAll(even); !slices.Equal(got, []int{6, 8}) {
		t.Fatalf("even values = %v", got)
	}
}

func TestArenaIterators(t *testing.T) {
	a := Collect("x", "y", "z")
	ids := a.IDs()
	a.Extract(ids[1])

	var slotsSeen []int
	for slot, v := range a.All() {
		slotsSeen = append(slotsSeen, slot)
		_ = v
	}
	if !slices.Equal(slotsSeen, []int{0, 2}) {
		t.Fatalf("All() slots = %v", slotsSeen)
	}

	for _, p := range a.AllPtr() {
		*p += "!"
	}
	if v, _ := a.Get(ids[2]); v != "z!" {
		t.Fatalf("AllPtr mutation lost: %q", v)
	}

	var drained []string
	for _, v := range a.Drain() {
		drained = append(drained, v)
	}
	if !slices.Equal(drained, []string{"x!", "z!"}) {
		t.Fatalf("Drain() = %v", drained)
	}
	if !a.Empty() {
		t.Fatal("arena must be empty after Drain")
	}
	if a.Owns(ids[0]) {
		t.Fatal("drained id must not be owned")
	}
}

func TestArenaIDAtAndClone(t *testing.T) {
	a := NewArena[int](4)
	id := a.Push(42)
	got, ok := a.IDAt(0)
	if !ok || got != id {
		t.Fatalf("IDAt(0) = %v, %v; want %v", got, ok, id)
	}
	if _, ok := a.IDAt(3); ok {
		t.Fatal("IDAt out of range must miss")
	}

	c := a.Clone()
	if v, ok := c.Get(id); !ok || v != 42 {
		t.Fatal("clone must accept ids of the original")
	}
	c.Extract(id)
	if !a.Owns(id) {
		t.Fatal("extracting from clone must not affect original")
	}
}
