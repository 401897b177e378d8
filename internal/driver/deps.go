package driver

import (
	"glslx/internal/diag"
	"glslx/internal/project"
	"glslx/internal/project/dag"
)

// DepGraph is the include graph of a batch.
type DepGraph struct {
	Index dag.FileIndex
	Graph dag.Graph
	Slots []dag.FileSlot
	Topo  *dag.Topo
}

// BuildDeps builds the include graph of metas and fills tree hashes.
// Problems (cycles, missing targets) go to reporter, which may be nil.
func BuildDeps(metas []project.FileMeta, reporter diag.Reporter) *DepGraph {
	idx := dag.BuildIndex(metas)
	g, slots := dag.BuildGraph(idx, metas, reporter)
	topo := dag.ToposortKahn(g)
	dag.ReportCycles(idx, topo, reporter)
	dag.ComputeTreeHashes(g, slots, topo)
	return &DepGraph{Index: idx, Graph: g, Slots: slots, Topo: topo}
}

// Meta returns the meta of path, if it was expanded.
func (d *DepGraph) Meta(path string) (project.FileMeta, bool) {
	id, ok := d.Index.PathToID[path]
	if !ok || !d.Slots[id].Present {
		return project.FileMeta{}, false
	}
	return d.Slots[id].Meta, true
}

// Includes lists direct include targets of path.
func (d *DepGraph) Includes(path string) []string {
	id, ok := d.Index.PathToID[path]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(d.Graph.Edges[id]))
	for _, to := range d.Graph.Edges[id] {
		out = append(out, d.Index.IDToPath[to])
	}
	return out
}

// DependencyOrder lists files so that every file comes after its includes.
func (d *DepGraph) DependencyOrder() []string {
	order := d.Topo.DependencyOrder()
	out := make([]string, 0, len(order))
	for _, id := range order {
		out = append(out, d.Index.IDToPath[id])
	}
	return out
}
