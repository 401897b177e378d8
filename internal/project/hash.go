package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a SHA-256 value, same layout as source.File.Hash.
type Digest [sha256.Size]byte

// Combine folds a file's content hash with the tree hashes of its includes.
// The include count is mixed in first, so (a, b) and (a+b) never collide.
// deps must come in a stable order; graph edges are sorted by slot.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(deps))) //nolint:gosec // include fan-out is far below 2^32
	h.Write(n[:])
	h.Write(content[:])
	for i := range deps {
		h.Write(deps[i][:])
	}
	return Digest(h.Sum(nil))
}

// Short is the 12-digit prefix shown by `glslx deps`.
func (d Digest) Short() string { return hex.EncodeToString(d[:6]) }

func (d Digest) IsZero() bool { return d == Digest{} }
