package rules

// Policy is the full set of expansion knobs.
type Policy struct {
	DisplayWarnings  Rule[bool]
	SameIncludes     Rule[SameIncludes]
	MultipleVersions Rule[MultipleVersions]
	VersionPlacement Rule[VersionPlacement]
}

// Defaults returns the built-in policy; every rule is a default.
func Defaults() Policy {
	return Policy{
		DisplayWarnings:  Default(true),
		SameIncludes:     Default(SameIncludesDeleteRepeats),
		MultipleVersions: Default(MultipleVersionsSetToHighest),
		VersionPlacement: Default(VersionPlacementMoveToBeginning),
	}
}

// Merge layers next over p rule by rule.
func (p Policy) Merge(next Policy) Policy {
	return Policy{
		DisplayWarnings:  p.DisplayWarnings.Merge(next.DisplayWarnings),
		SameIncludes:     p.SameIncludes.Merge(next.SameIncludes),
		MultipleVersions: p.MultipleVersions.Merge(next.MultipleVersions),
		VersionPlacement: p.VersionPlacement.Merge(next.VersionPlacement),
	}
}

// Add layers next over p in place.
func (p *Policy) Add(next Policy) {
	*p = p.Merge(next)
}

func (p *Policy) SetDisplayWarnings(v bool)              { p.DisplayWarnings.Set(v) }
func (p *Policy) SetSameIncludes(v SameIncludes)         { p.SameIncludes.Set(v) }
func (p *Policy) SetMultipleVersions(v MultipleVersions) { p.MultipleVersions.Set(v) }
func (p *Policy) SetVersionPlacement(v VersionPlacement) { p.VersionPlacement.Set(v) }
