package source

import "crypto/sha256"

// FileID indexes FileSet.files; it is stable for the life of the set.
type FileID uint32

// FileFlags record what normalization did to the raw bytes.
type FileFlags uint8

const (
	FileVirtual    FileFlags = 1 << iota // not read from disk
	FileHadBOM                           // leading UTF-8 BOM dropped
	FileStrippedCR                       // carriage returns removed
)

// File is one normalized read. Hash covers Content, not the raw bytes.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [sha256.Size]byte
	Flags   FileFlags
}

func (f *File) Text() string { return string(f.Content) }
