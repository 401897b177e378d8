package diag

// Note adds secondary context, optionally tied to another file.
type Note struct {
	Path string
	Msg  string
}

// Diagnostic is one finding about a file. Path is absolute; renderers make
// it relative to the project root.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Related  []string // другие участвующие файлы (include, цикл)
	Count    int      // число повторов, если применимо
	Notes    []Note
}
