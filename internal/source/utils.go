package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// stripCR удаляет все \r (а не только из пар \r\n).
// Возвращает новый слайс и флаг: были ли удаления.
func stripCR(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte{'\r'}, nil), true
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// DefaultRoot returns the directory containing the running executable.
func DefaultRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("unable to find executable path: %w", err)
	}
	dir := filepath.Dir(exe)
	if dir == "" || dir == exe {
		return "", fmt.Errorf("executable %q has no parent directory", exe)
	}
	return dir, nil
}

// RelativePath renders target relative to baseDir, climbing with ".." when
// target is outside of it. Falls back to the cleaned target when no relative
// form exists (different volumes, relative inputs).
func RelativePath(target, baseDir string) string {
	if baseDir == "" || !filepath.IsAbs(target) || !filepath.IsAbs(baseDir) {
		return normalizePath(target)
	}
	rel, err := filepath.Rel(baseDir, target)
	if err != nil {
		return normalizePath(target)
	}
	return filepath.ToSlash(rel)
}
