package expand

import (
	"slices"

	"glslx/internal/rules"
)

// parseLog travels with one top-level request: the effective policy, the
// chain of files being resolved, and warnings of the file being built.
type parseLog struct {
	policy   rules.Policy
	stack    []string
	warnings []Warning
	quiet    bool // вложенные разрешения не печатают предупреждения
}

func newParseLog(policy rules.Policy) *parseLog {
	return &parseLog{policy: policy}
}

// nested returns the log for resolving an include: same policy and stack,
// no warnings, emission suppressed.
func (l *parseLog) nested() *parseLog {
	return &parseLog{
		policy: l.policy,
		stack:  slices.Clone(l.stack),
		quiet:  true,
	}
}

func (l *parseLog) enter(path string) {
	l.stack = append(l.stack, path)
}

func (l *parseLog) warn(w Warning) {
	l.warnings = append(l.warnings, w)
}

// cycle returns the include chain closed by target, or nil when target is
// not being resolved.
func (l *parseLog) cycle(target string) []string {
	i := slices.Index(l.stack, target)
	if i < 0 {
		return nil
	}
	chain := slices.Clone(l.stack[i:])
	return append(chain, target)
}
