package source

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// FileSet records every file read through it. Each Load reads the file again
// and creates a new FileID; the path index always points at the latest read.
// FileSet is safe for concurrent use.
type FileSet struct {
	mu    sync.RWMutex
	fsys  FS
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates an empty FileSet reading through fsys (OSFS if nil).
func NewFileSet(fsys FS) *FileSet {
	if fsys == nil {
		fsys = OSFS{}
	}
	return &FileSet{
		fsys:  fsys,
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// FS returns the underlying filesystem.
func (fileSet *FileSet) FS() FS { return fileSet.fsys }

// Add stores a file from normalized bytes, computes its hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	normalizedPath := normalizePath(path)

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		Hash:    hash,
		Flags:   flags,
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file, strips a UTF-8 BOM and every carriage return, and calls Add.
func (fileSet *FileSet) Load(path string) (*File, error) {
	content, err := fileSet.fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCR := stripCR(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCR {
		flags |= FileStrippedCR
	}
	return fileSet.Get(fileSet.Add(path, content, flags)), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for the given ID, or nil if the ID is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil
	}
	f := fileSet.files[id]
	return &f
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// GetByPath returns the latest read of path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fileSet.GetLatest(path)
	if !ok {
		return nil, false
	}
	return fileSet.Get(id), true
}

// Len returns the number of recorded reads.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}
