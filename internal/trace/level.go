package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls verbosity. Each level adds one scope to the previous one.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // failures only
	LevelPhase        // driver and resolve requests
	LevelDetail       // every file
	LevelDebug        // marks too
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// finest scope stored at each level; LevelError stores failure points only
var levelScope = [...]Scope{
	LevelPhase:  ScopeResolve,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeMark,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

func ParseLevel(s string) (Level, error) {
	i := slices.Index(levelNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
	}
	return Level(i), nil
}

// ShouldEmit reports whether spans of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScope) {
		return false
	}
	return scope != 0 && scope <= levelScope[l]
}

// accepts: failures pass at any level above off.
func (l Level) accepts(ev *Event) bool {
	if l == LevelOff || ev == nil {
		return false
	}
	return l.ShouldEmit(ev.Scope) || ev.Extra["error"] == "true"
}
