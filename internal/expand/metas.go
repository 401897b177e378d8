package expand

import (
	"glslx/internal/project"
)

// FileMetas describes the cached include tree below paths, depth first.
// Paths that are not cached are skipped; call Resolve first.
func (r *Resolver) FileMetas(paths ...string) []project.FileMeta {
	var out []project.FileMeta
	seen := make(map[string]bool)

	var walk func(path string)
	walk = func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		f, ok := r.cache[path]
		if !ok {
			return
		}
		meta := project.FileMeta{
			Path:     f.Path,
			Includes: f.Includes,
			Warnings: len(f.Warnings),
		}
		if src := r.files.Get(f.Source); src != nil {
			meta.ContentHash = project.Digest(src.Hash)
		}
		out = append(out, meta)
		for _, inc := range f.Includes {
			walk(inc)
		}
	}

	for _, p := range paths {
		abs, err := r.fsys.Abs(r.root, p)
		if err != nil {
			continue
		}
		walk(abs)
	}
	return out
}
