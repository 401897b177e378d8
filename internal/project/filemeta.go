package project

// FileMeta describes one shader file of the include graph.
type FileMeta struct {
	Path        string   // абсолютный путь
	Includes    []string // прямые include, абсолютные пути
	Warnings    int
	ContentHash Digest // хеш содержимого файла (из FileSet)
	TreeHash    Digest // агрегированный хеш с учётом всех include
}
