package wire

import "github.com/arloliu/mpvalue/internal/pool"

const (
	zoneObjectChunk = 256
	zonePairChunk   = 128
	zoneByteChunk   = 8 * 1024
)

var (
	objectChunkPool = pool.NewSlicePool[Object](zoneObjectChunk)
	pairChunkPool   = pool.NewSlicePool[ObjectKV](zonePairChunk)
)

// Zone is an arena for the children of parsed nodes.
//
// The parser carves the Array and Map slices of every node out of a few large
// chunks instead of allocating each container separately. Nodes produced with
// a Zone stay valid until Release is called; after Release their children may
// be reused by another Zone.
//
// A Zone is not safe for concurrent use.
type Zone struct {
	objects [][]Object
	pairs   [][]ObjectKV
	bytes   []byte
}

// NewZone creates an empty Zone.
func NewZone() *Zone {
	return &Zone{}
}

// Objects returns a zeroed slice of n objects owned by the zone.
func (z *Zone) Objects(n int) []Object {
	if n == 0 {
		return nil
	}
	if z == nil || n > zoneObjectChunk/2 {
		return make([]Object, n)
	}

	if last := len(z.objects) - 1; last >= 0 {
		cur := z.objects[last]
		if cap(cur)-len(cur) >= n {
			start := len(cur)
			cur = cur[:start+n]
			z.objects[last] = cur

			return cur[start : start+n : start+n]
		}
	}

	chunk := objectChunkPool.Get()[:n]
	z.objects = append(z.objects, chunk)

	return chunk[:n:n]
}

// Pairs returns a zeroed slice of n key/value entries owned by the zone.
func (z *Zone) Pairs(n int) []ObjectKV {
	if n == 0 {
		return nil
	}
	if z == nil || n > zonePairChunk/2 {
		return make([]ObjectKV, n)
	}

	if last := len(z.pairs) - 1; last >= 0 {
		cur := z.pairs[last]
		if cap(cur)-len(cur) >= n {
			start := len(cur)
			cur = cur[:start+n]
			z.pairs[last] = cur

			return cur[start : start+n : start+n]
		}
	}

	chunk := pairChunkPool.Get()[:n]
	z.pairs = append(z.pairs, chunk)

	return chunk[:n:n]
}

// CopyBytes copies b into memory owned by the zone.
func (z *Zone) CopyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	if z == nil || len(b) > zoneByteChunk/4 {
		return append([]byte(nil), b...)
	}

	if cap(z.bytes)-len(z.bytes) < len(b) {
		z.bytes = make([]byte, 0, zoneByteChunk)
	}
	start := len(z.bytes)
	z.bytes = append(z.bytes, b...)

	return z.bytes[start:len(z.bytes):len(z.bytes)]
}

// Release returns the zone's chunks to the shared pools. Every node allocated
// from the zone becomes invalid.
func (z *Zone) Release() {
	if z == nil {
		return
	}
	for _, c := range z.objects {
		objectChunkPool.Put(c)
	}
	for _, c := range z.pairs {
		pairChunkPool.Put(c)
	}
	z.objects = nil
	z.pairs = nil
	z.bytes = nil
}
