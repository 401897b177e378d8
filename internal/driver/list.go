package driver

import (
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// ShaderExts are the extensions ListShaders picks up.
var ShaderExts = []string{".glsl", ".vert", ".frag", ".geom", ".comp", ".tesc", ".tese"}

// ListShaders возвращает отсортированный список шейдеров в директории.
// Пустой exts означает ShaderExts.
func ListShaders(dir string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		exts = ShaderExts
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
