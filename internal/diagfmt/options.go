package diagfmt

import (
	"path/filepath"

	"glslx/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeRelative prints paths relative to the root, climbing with "..".
	PathModeRelative PathMode = iota
	PathModeAbsolute
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	Root      string
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Root         string
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}

func formatPath(path string, mode PathMode, root string) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		return filepath.ToSlash(path)
	case PathModeBasename:
		return filepath.Base(path)
	default:
		return source.RelativePath(path, root)
	}
}
