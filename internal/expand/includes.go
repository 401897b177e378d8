package expand

import (
	"path/filepath"
	"slices"

	"glslx/internal/marked"
	"glslx/internal/slots"
)

// findIncludes marks every include directive of text with the absolute path
// of its target. Targets are relative to the directory of path.
func (r *Resolver) findIncludes(path, text string) (*marked.Text[string], error) {
	parent := filepath.Dir(path)
	if parent == "" || parent == path {
		return nil, r.fail(MissingFileParent, path, nil)
	}

	doc := marked.New[string](text)
	for _, m := range r.include.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		name := text[m[2*r.filenameGroup]:m[2*r.filenameGroup+1]]

		target, err := r.fsys.Abs(parent, name)
		if err != nil {
			return nil, r.fail(PathNormalizationFailure, filepath.Join(parent, name), err)
		}
		if _, err := doc.SetMark(target, start, end); err != nil {
			return nil, r.fail(InvalidRange, path, err)
		}
	}
	return doc, nil
}

// distinctTargets lists include targets of ids without repeats, in order.
func distinctTargets(doc *marked.Text[string], ids []slots.ID) []string {
	var out []string
	for _, id := range ids {
		m, ok := doc.Mark(id)
		if ok && !slices.Contains(out, m.Flag) {
			out = append(out, m.Flag)
		}
	}
	return out
}
