package dag

import "slices"

// Topo is the result of Kahn's algorithm over a Graph.
type Topo struct {
	Order   []FileID   // includers before the files they include
	Batches [][]FileID // waves: files of one wave don't depend on each other
	Cyclic  bool
	Cycles  []FileID // nodes never released, sorted
}

// ToposortKahn peels the graph wave by wave. Within a wave ids are sorted,
// so the order is deterministic for a given index.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Edges)
	indeg := slices.Clone(g.Indeg)
	topo := &Topo{Order: make([]FileID, 0, n)}

	var wave []FileID
	for i := range n {
		if g.Present[i] && indeg[i] == 0 {
			wave = append(wave, toFileID(i))
		}
	}

	for len(wave) > 0 {
		topo.Batches = append(topo.Batches, wave)
		topo.Order = append(topo.Order, wave...)

		var next []FileID
		for _, id := range wave {
			for _, to := range g.Edges[id] {
				if !g.Present[to] {
					continue
				}
				if indeg[to]--; indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		wave = next
	}

	// всё, что осталось с ненулевой входящей степенью, сидит в цикле
	for i := range n {
		if g.Present[i] && indeg[i] > 0 {
			topo.Cycles = append(topo.Cycles, toFileID(i))
		}
	}
	topo.Cyclic = len(topo.Cycles) > 0
	return topo
}

// DependencyOrder returns Order reversed: every file after all it includes.
func (t *Topo) DependencyOrder() []FileID {
	out := slices.Clone(t.Order)
	slices.Reverse(out)
	return out
}
