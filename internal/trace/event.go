package trace

import "time"

// Kind tells begin, end and instant events apart.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

// Scope is the granularity of an event; coarser scopes are smaller.
type Scope uint8

const (
	ScopeDriver  Scope = iota + 1 // CLI command, batch run
	ScopeResolve                  // one top-level resolve request
	ScopeFile                     // one file loaded and expanded
	ScopeMark                     // include splices, removed repeats
)

var (
	kindNames  = [...]string{"unknown", "begin", "end", "point"}
	scopeNames = [...]string{"unknown", "driver", "resolve", "file", "mark"}
)

func nameAt(names []string, i int) string {
	if i <= 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}

func (k Kind) String() string  { return nameAt(kindNames[:], int(k)) }
func (s Scope) String() string { return nameAt(scopeNames[:], int(s)) }

// Event is one record. Seq is assigned by the sink that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Request  string // see WithRequest
	Name     string // "resolve", "file:common/light.glsl", ...
	Detail   string
	Extra    map[string]string
}
