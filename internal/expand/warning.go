package expand

import (
	"fmt"

	"glslx/internal/diag"
	"glslx/internal/rules"
	"glslx/internal/source"
)

// WarnKind classifies warnings.
type WarnKind uint8

const (
	WarnMultipleSameIncludes WarnKind = iota + 1
)

func (k WarnKind) String() string {
	switch k {
	case WarnMultipleSameIncludes:
		return "multiple-same-includes"
	default:
		return "unknown"
	}
}

// Warning is a recoverable finding recorded on a ShaderFile.
type Warning struct {
	Kind     WarnKind
	File     string // включающий файл
	Included string // файл, подключённый несколько раз
	Times    int
	Action   rules.SameIncludes
}

// Message renders w with paths relative to root.
func (w Warning) Message(root string) string {
	switch w.Kind {
	case WarnMultipleSameIncludes:
		msg := fmt.Sprintf("file %s was included %d times in file %s",
			source.RelativePath(w.Included, root), w.Times, source.RelativePath(w.File, root))
		if w.Action == rules.SameIncludesDeleteRepeats {
			msg += "; every include but the first was deleted"
		}
		return msg
	}
	return "unknown warning"
}

// Diagnostic converts w into a warning diagnostic.
func (w Warning) Diagnostic(root string) diag.Diagnostic {
	return diag.NewWarning(diag.ExpMultipleSameIncludes, w.File, w.Message(root)).
		WithRelated(w.Included).
		WithCount(w.Times).
		WithNote("", "set same-includes in glslx.toml or pass --same-includes to change this behaviour")
}
