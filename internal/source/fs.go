package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmptyPath is returned by Abs for an empty path.
var ErrEmptyPath = errors.New("empty path")

// FS is everything the expander needs from a filesystem.
type FS interface {
	// ReadFile returns the full content of the file at an absolute path.
	// A missing file must be reported with an error matching fs.ErrNotExist.
	ReadFile(path string) ([]byte, error)
	// Abs resolves path against base and removes "." and ".." segments.
	Abs(base, path string) (string, error)
}

// OSFS reads files from the host filesystem. UTF-8 and UTF-16 byte order
// marks are honoured; files without a BOM are passed through unchanged.
type OSFS struct{}

// ReadFile implements FS.
func (OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := transform.NewReader(f, unicode.BOMOverride(transform.Nop))
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

// Abs implements FS.
func (OSFS) Abs(base, path string) (string, error) {
	return absPath(base, path)
}

func absPath(base, path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if base == "" {
		return filepath.Abs(path)
	}
	if !filepath.IsAbs(base) {
		abs, err := filepath.Abs(base)
		if err != nil {
			return "", err
		}
		base = abs
	}
	return filepath.Join(base, path), nil
}

// MemFS is an in-memory FS keyed by cleaned absolute paths. It counts reads
// per path, which tests use to observe caching.
type MemFS struct {
	mu    sync.Mutex
	files map[string][]byte
	reads map[string]int
}

// NewMemFS creates a MemFS from path -> content pairs.
func NewMemFS(files map[string]string) *MemFS {
	m := &MemFS{
		files: make(map[string][]byte, len(files)),
		reads: make(map[string]int),
	}
	for p, content := range files {
		m.files[filepath.Clean(p)] = []byte(content)
	}
	return m
}

// WriteFile adds or replaces a file.
func (m *MemFS) WriteFile(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = []byte(content)
}

// ReadFile implements FS.
func (m *MemFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	content, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	m.reads[path]++
	return slices.Clone(content), nil
}

// Abs implements FS.
func (m *MemFS) Abs(base, path string) (string, error) {
	return absPath(base, path)
}

// Reads returns how many times path was read successfully.
func (m *MemFS) Reads(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[filepath.Clean(path)]
}

// TotalReads returns the number of successful reads across all paths.
func (m *MemFS) TotalReads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for n := range maps.Values(m.reads) {
		total += n
	}
	return total
}
