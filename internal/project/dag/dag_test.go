package dag

import (
	"slices"
	"testing"

	"glslx/internal/diag"
	"glslx/internal/project"
)

func idsToPaths(idx FileIndex, ids []FileID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToPath[int(id)]
	}
	return out
}

func diamond() []project.FileMeta {
	return []project.FileMeta{
		{Path: "/s/main", Includes: []string{"/s/b", "/s/a"}, ContentHash: project.Digest{1}},
		{Path: "/s/a", Includes: []string{"/s/common"}, ContentHash: project.Digest{2}},
		{Path: "/s/b", Includes: []string{"/s/common"}, ContentHash: project.Digest{3}},
		{Path: "/s/common", ContentHash: project.Digest{4}},
	}
}

func TestBuildIndexIncludesTargets(t *testing.T) {
	idx := BuildIndex([]project.FileMeta{{Path: "/s/main", Includes: []string{"/s/z", "/s/a"}}})
	want := []string{"/s/a", "/s/main", "/s/z"}
	if !slices.Equal(idx.IDToPath, want) {
		t.Fatalf("IDToPath = %v, want %v", idx.IDToPath, want)
	}
	for i, p := range want {
		if id, ok := idx.PathToID[p]; !ok || int(id) != i {
			t.Fatalf("PathToID[%q] = %v, want %d", p, id, i)
		}
	}
}

func TestDiamondOrder(t *testing.T) {
	metas := diamond()
	idx := BuildIndex(metas)
	bag := diag.NewBag(0)
	g, slots := BuildGraph(idx, metas, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	topo := ToposortKahn(g)
	if topo.Cyclic {
		t.Fatalf("diamond is acyclic")
	}
	// внутри волны порядок по ID (то есть по пути)
	if got := idsToPaths(idx, topo.Order); !slices.Equal(got, []string{"/s/main", "/s/a", "/s/b", "/s/common"}) {
		t.Fatalf("order = %v", got)
	}
	if got := idsToPaths(idx, topo.DependencyOrder()); !slices.Equal(got, []string{"/s/common", "/s/b", "/s/a", "/s/main"}) {
		t.Fatalf("dependency order = %v", got)
	}
	if len(topo.Batches) != 3 || len(topo.Batches[1]) != 2 {
		t.Fatalf("batches = %v", topo.Batches)
	}

	ComputeTreeHashes(g, slots, topo)
	common := slots[idx.PathToID["/s/common"]].Meta
	if common.TreeHash != project.Combine(common.ContentHash) {
		t.Fatalf("leaf hash must cover only its content")
	}
	a := slots[idx.PathToID["/s/a"]].Meta
	if a.TreeHash != project.Combine(a.ContentHash, common.TreeHash) {
		t.Fatalf("a hash must include common")
	}
	if slots[idx.PathToID["/s/main"]].Meta.TreeHash.IsZero() {
		t.Fatalf("main hash not computed")
	}
}

func TestMissingAndSelfIncludes(t *testing.T) {
	metas := []project.FileMeta{
		{Path: "/s/main", Includes: []string{"/s/gone", "/s/main"}},
	}
	idx := BuildIndex(metas)
	bag := diag.NewBag(0)
	g, _ := BuildGraph(idx, metas, diag.BagReporter{Bag: bag})

	if bag.Len() != 2 {
		t.Fatalf("want 2 diagnostics, got %+v", bag.Items())
	}
	bag.Sort()
	codes := []diag.Code{bag.Items()[0].Code, bag.Items()[1].Code}
	if !slices.Contains(codes, diag.IOFileNotFound) || !slices.Contains(codes, diag.ExpInfiniteRecursion) {
		t.Fatalf("codes = %v", codes)
	}
	if g.Present[idx.PathToID["/s/gone"]] {
		t.Fatalf("missing file must not be present")
	}
}

func TestDuplicateMeta(t *testing.T) {
	metas := []project.FileMeta{
		{Path: "/s/a", Warnings: 1},
		{Path: "/s/a", Warnings: 2},
	}
	idx := BuildIndex(metas)
	bag := diag.NewBag(0)
	_, slots := BuildGraph(idx, metas, diag.BagReporter{Bag: bag})
	if bag.Len() != 1 {
		t.Fatalf("want 1 duplicate diagnostic, got %d", bag.Len())
	}
	if slots[0].Meta.Warnings != 1 {
		t.Fatalf("first meta must win")
	}
}

func TestCycleReported(t *testing.T) {
	metas := []project.FileMeta{
		{Path: "/s/a", Includes: []string{"/s/b"}},
		{Path: "/s/b", Includes: []string{"/s/a"}},
		{Path: "/s/main", Includes: []string{"/s/a"}},
	}
	idx := BuildIndex(metas)
	g, slots := BuildGraph(idx, metas, nil)
	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatalf("expected cycle")
	}
	if got := idsToPaths(idx, topo.Cycles); !slices.Equal(got, []string{"/s/a", "/s/b"}) {
		t.Fatalf("cycles = %v", got)
	}

	bag := diag.NewBag(0)
	ReportCycles(idx, topo, diag.BagReporter{Bag: bag})
	if bag.Len() != 2 {
		t.Fatalf("want one diagnostic per cyclic file, got %d", bag.Len())
	}

	ComputeTreeHashes(g, slots, topo)
	if !slots[0].Meta.TreeHash.IsZero() {
		t.Fatalf("cyclic graph must leave hashes empty")
	}
}
