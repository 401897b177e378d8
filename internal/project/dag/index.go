package dag

import (
	"fmt"
	"maps"
	"slices"

	"fortio.org/safecast"

	"glslx/internal/project"
)

// FileID is a dense node id; ids follow the sorted path order.
type FileID uint32

type FileIndex struct {
	PathToID map[string]FileID
	IDToPath []string
}

// BuildIndex numbers every path mentioned by metas, includers and included
// files alike, so a missing include still gets a node.
func BuildIndex(metas []project.FileMeta) FileIndex {
	seen := make(map[string]bool, len(metas))
	for _, meta := range metas {
		for _, p := range append([]string{meta.Path}, meta.Includes...) {
			if p != "" {
				seen[p] = true
			}
		}
	}

	idx := FileIndex{
		IDToPath: slices.Sorted(maps.Keys(seen)),
		PathToID: make(map[string]FileID, len(seen)),
	}
	for i, p := range idx.IDToPath {
		idx.PathToID[p] = toFileID(i)
	}
	return idx
}

func toFileID(i int) FileID {
	id, err := safecast.Conv[FileID](i)
	if err != nil {
		panic(fmt.Errorf("file id overflow: %w", err))
	}
	return id
}
