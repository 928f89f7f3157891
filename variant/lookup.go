package variant

import (
	"fmt"

	"github.com/arloliu/mpvalue/errs"
)

// Lookup returns, in entry order, the value of every entry of map value v
// whose key is Equal to key. It returns nil if v is not a map.
func (v Variant[S]) Lookup(key Variant[S]) []Variant[S] {
	if v.kind != KindMap {
		return nil
	}

	var out []Variant[S]
	for i := range v.kv {
		if Equal(v.kv[i].Key, key) {
			out = append(out, v.kv[i].Val)
		}
	}

	return out
}

// Get returns the value of the first entry of map value v whose key is Equal
// to key.
func (v Variant[S]) Get(key Variant[S]) (Variant[S], bool) {
	if v.kind != KindMap {
		return Variant[S]{}, false
	}

	for i := range v.kv {
		if Equal(v.kv[i].Key, key) {
			return v.kv[i].Val, true
		}
	}

	return Variant[S]{}, false
}

// Index groups the entries of a map value by key for repeated lookups.
//
// Entries with equal keys stay separate and keep their order; the index only
// speeds up finding them. An Index is safe for concurrent reads.
type Index[S Storage] struct {
	entries []Pair[S]
	buckets map[uint64][]int
}

// NewIndex builds an Index over the entries of map value m.
// It fails with errs.ErrType if m is not a map.
func NewIndex[S Storage](m Variant[S]) (*Index[S], error) {
	if m.kind != KindMap {
		return nil, fmt.Errorf("%w: cannot index %s", errs.ErrType, m.kind)
	}

	idx := &Index[S]{
		entries: m.kv,
		buckets: make(map[uint64][]int, len(m.kv)),
	}
	for i := range m.kv {
		h := m.kv[i].Key.Hash()
		idx.buckets[h] = append(idx.buckets[h], i)
	}

	return idx, nil
}

// Len returns the number of indexed entries, duplicates included.
func (idx *Index[S]) Len() int {
	return len(idx.entries)
}

// Lookup returns the values of all entries whose key is Equal to key, in
// entry order.
func (idx *Index[S]) Lookup(key Variant[S]) []Variant[S] {
	var out []Variant[S]
	for _, i := range idx.buckets[key.Hash()] {
		if Equal(idx.entries[i].Key, key) {
			out = append(out, idx.entries[i].Val)
		}
	}

	return out
}

// Get returns the value of the first entry whose key is Equal to key.
func (idx *Index[S]) Get(key Variant[S]) (Variant[S], bool) {
	for _, i := range idx.buckets[key.Hash()] {
		if Equal(idx.entries[i].Key, key) {
			return idx.entries[i].Val, true
		}
	}

	return Variant[S]{}, false
}

// Contains reports whether any entry has a key Equal to key.
func (idx *Index[S]) Contains(key Variant[S]) bool {
	_, ok := idx.Get(key)
	return ok
}
