package slots

import "fmt"

// ID is a handle into an Arena: the slot index plus the generation the slot
// had when the value was stored. Comparable with ==.
type ID struct {
	Generation uint32
	Slot       uint32
}

// NoID never refers to a stored value: every stored value has generation >= 1.
var NoID = ID{}

// IsValid reports whether the ID could refer to a stored value at all.
// Ownership still has to be checked against the arena.
func (id ID) IsValid() bool { return id.Generation != 0 }

func (id ID) String() string {
	return fmt.Sprintf("%d@%d", id.Slot, id.Generation)
}
