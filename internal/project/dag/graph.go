package dag

import (
	"fmt"
	"slices"
	"strings"

	"glslx/internal/diag"
	"glslx/internal/project"
)

type Graph struct {
	Edges   [][]FileID // Edges[from] = []to, from включает to
	Indeg   []int      // входящие степени для Kahn (учитывает только присутствующие файлы)
	Present []bool     // признак, что файл реально разобран (а не только упомянут в include)
}

type FileSlot struct {
	Meta    project.FileMeta
	Present bool
}

// BuildGraph wires metas into a graph. Missing include targets, duplicate
// metas and self includes go to reporter (may be nil).
func BuildGraph(idx FileIndex, metas []project.FileMeta, reporter diag.Reporter) (Graph, []FileSlot) {
	nodeCount := len(idx.IDToPath)
	g := Graph{
		Edges:   make([][]FileID, nodeCount),
		Indeg:   make([]int, nodeCount),
		Present: make([]bool, nodeCount),
	}
	slots := make([]FileSlot, nodeCount)
	for i, path := range idx.IDToPath {
		slots[i].Meta.Path = path
	}
	report := func(d diag.Diagnostic) {
		if reporter != nil {
			reporter.Report(d)
		}
	}

	for _, meta := range metas {
		if meta.Path == "" {
			continue
		}
		id, ok := idx.PathToID[meta.Path]
		if !ok {
			// не должно происходить, индекс строится на тех же метаданных
			continue
		}
		slot := &slots[int(id)]
		if slot.Present {
			report(diag.NewError(diag.PrjError, meta.Path, fmt.Sprintf("duplicate file %q in include graph", meta.Path)))
			continue
		}
		slot.Meta = meta
		slot.Present = true
		g.Present[int(id)] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present || len(slot.Meta.Includes) == 0 {
			continue
		}
		seen := make(map[FileID]struct{}, len(slot.Meta.Includes))
		for _, inc := range slot.Meta.Includes {
			toID, ok := idx.PathToID[inc]
			if !ok {
				continue
			}
			if toFileID(from) == toID {
				report(diag.NewError(diag.ExpInfiniteRecursion, slot.Meta.Path, fmt.Sprintf("file %q includes itself", slot.Meta.Path)))
				continue
			}
			if _, dup := seen[toID]; dup {
				continue
			}
			seen[toID] = struct{}{}

			g.Edges[from] = append(g.Edges[from], toID)
			if g.Present[int(toID)] {
				g.Indeg[int(toID)]++
			} else {
				report(diag.NewError(diag.IOFileNotFound, slot.Meta.Path,
					fmt.Sprintf("file %q includes missing file %q", slot.Meta.Path, inc)).WithRelated(inc))
			}
		}
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}

	return g, slots
}

// ReportCycles reports every file left in a cycle by ToposortKahn.
func ReportCycles(idx FileIndex, topo *Topo, reporter diag.Reporter) {
	if reporter == nil || topo == nil || !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	names := make([]string, 0, len(topo.Cycles))
	for _, id := range topo.Cycles {
		names = append(names, idx.IDToPath[int(id)])
	}
	summary := strings.Join(names, " -> ")

	for _, id := range topo.Cycles {
		path := idx.IDToPath[int(id)]
		msg := fmt.Sprintf("file %q participates in an include cycle: %s", path, summary)
		reporter.Report(diag.NewError(diag.ExpInfiniteRecursion, path, msg).WithRelated(names...))
	}
}
