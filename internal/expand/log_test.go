package expand

import (
	"slices"
	"testing"

	"glslx/internal/rules"
)

func TestParseLogNested(t *testing.T) {
	log := newParseLog(rules.Defaults())
	log.enter("/a")
	log.warn(Warning{Kind: WarnMultipleSameIncludes})

	child := log.nested()
	child.enter("/b")
	if !child.quiet || len(child.warnings) != 0 {
		t.Fatalf("nested log must be quiet and empty: %+v", child)
	}
	if len(log.stack) != 1 {
		t.Fatalf("nested enter leaked into parent stack: %v", log.stack)
	}
	if got := child.cycle("/a"); !slices.Equal(got, []string{"/a", "/b", "/a"}) {
		t.Fatalf("cycle: %v", got)
	}
	if child.cycle("/c") != nil {
		t.Fatalf("no cycle expected")
	}
}
