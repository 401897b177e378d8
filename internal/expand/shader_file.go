package expand

import (
	"glslx/internal/marked"
	"glslx/internal/source"
)

// ShaderFile is a fully expanded file. It is built once per canonical path
// and shared by every later request for that path.
type ShaderFile struct {
	Path     string
	Text     string
	Warnings []Warning
	Includes []string // прямые include, без повторов, в порядке появления
	Source   source.FileID

	content *marked.Text[string]
}

// Content returns a copy of the expanded document. Each mark spans the text
// spliced in for one include and carries the included file's path.
func (f *ShaderFile) Content() *marked.Text[string] {
	return f.content.Clone()
}
