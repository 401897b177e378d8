package dag

import (
	"glslx/internal/project"
)

// ComputeTreeHashes заполняет TreeHash по обратному порядку топосортировки.
// Для циклического графа намеренно ничего не делает (оставляет нули).
func ComputeTreeHashes(g Graph, slots []FileSlot, topo *Topo) {
	if topo == nil || topo.Cyclic {
		return
	}
	for i := len(topo.Order) - 1; i >= 0; i-- {
		id := topo.Order[i]
		slot := &slots[int(id)]
		if !slot.Present {
			continue
		}
		deps := make([]project.Digest, 0, len(g.Edges[int(id)]))
		for _, to := range g.Edges[int(id)] {
			if !g.Present[int(to)] {
				continue
			}
			deps = append(deps, slots[int(to)].Meta.TreeHash)
		}
		slot.Meta.TreeHash = project.Combine(slot.Meta.ContentHash, deps...)
	}
}
