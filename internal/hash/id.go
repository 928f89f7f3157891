package hash

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Sum64 computes the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Hasher feeds a structural description of a value into an xxHash64 digest.
//
// Variable-length fields are length-prefixed so that adjacent fields cannot
// alias each other ("ab"+"c" and "a"+"bc" hash differently).
type Hasher struct {
	d       *xxhash.Digest
	scratch [8]byte
}

var hasherPool = sync.Pool{
	New: func() any {
		return &Hasher{d: xxhash.New()}
	},
}

// Get returns a reset Hasher from the pool.
func Get() *Hasher {
	h, _ := hasherPool.Get().(*Hasher)
	h.d.Reset()

	return h
}

// Put returns h to the pool.
func Put(h *Hasher) {
	if h != nil {
		hasherPool.Put(h)
	}
}

// WriteTag writes a single discriminant byte.
func (h *Hasher) WriteTag(tag byte) {
	h.scratch[0] = tag
	_, _ = h.d.Write(h.scratch[:1])
}

// WriteUint64 writes v in big-endian order.
func (h *Hasher) WriteUint64(v uint64) {
	binary.BigEndian.PutUint64(h.scratch[:], v)
	_, _ = h.d.Write(h.scratch[:])
}

// WriteBytes writes the length of b followed by b.
func (h *Hasher) WriteBytes(b []byte) {
	h.WriteUint64(uint64(len(b)))
	_, _ = h.d.Write(b)
}

// Sum64 returns the digest of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}
