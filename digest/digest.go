// Package digest wraps the standard library's cryptographic hash
// implementations behind the single dispatch-on-tag Digest type, plus the
// adaptive I/O buffer selector used when streaming files through it.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/coreforensics/hashcore/hashtypes"
)

// Digest computes a single algorithm's running hash over a sequence of
// byte chunks. Each Digest is independent; there is no shared state across
// files or across Digest instances.
type Digest struct {
	algorithm hashtypes.Algorithm
	h         hash.Hash
}

// New constructs a Digest for the given algorithm tag. Dispatch happens
// once, at construction; no further type switching occurs on the hot path.
func New(algorithm hashtypes.Algorithm) (*Digest, error) {
	var h hash.Hash
	switch algorithm {
	case hashtypes.SHA256:
		h = sha256.New()
	case hashtypes.SHA1:
		h = sha1.New()
	case hashtypes.MD5:
		h = md5.New()
	default:
		return nil, fmt.Errorf("digest: unsupported algorithm %v", algorithm)
	}
	return &Digest{algorithm: algorithm, h: h}, nil
}

// Update feeds bytes into the running hash. It never errors: hash.Hash's
// Write contract guarantees that for the stdlib implementations wrapped
// here.
func (d *Digest) Update(p []byte) {
	d.h.Write(p)
}

// Finalize returns the lowercase hex digest accumulated so far. It does not
// reset the underlying state; callers construct a fresh Digest per file.
func (d *Digest) Finalize() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// Algorithm reports the tag this Digest was constructed with.
func (d *Digest) Algorithm() hashtypes.Algorithm {
	return d.algorithm
}

const (
	smallFileThreshold  = 1_000_000
	mediumFileThreshold = 100_000_000

	smallBufferSize  = 256 * 1024
	mediumBufferSize = 2 * 1024 * 1024
	largeBufferSize  = 10 * 1024 * 1024
)

// BufferSize picks the I/O read buffer size for a file of the given size.
// Small files are dominated by syscall/setup cost and prefer many small
// reads; large files amortize bigger reads and keep read-ahead full.
func BufferSize(fileSize uint64) int {
	switch {
	case fileSize < smallFileThreshold:
		return smallBufferSize
	case fileSize < mediumFileThreshold:
		return mediumBufferSize
	default:
		return largeBufferSize
	}
}
