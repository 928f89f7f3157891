package variant

import (
	"bytes"
	"cmp"
	"math"
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b.
//
// The order is total over every kind. Values of different kinds order by
// Kind. Equal kinds order by payload:
//   - Bool: false before true
//   - Int, Uint: numerically
//   - Float: numerically, with NaN before every number and equal to itself,
//     and -0 equal to +0
//   - Str, Bin: lexicographically by bytes
//   - Ext: by type, then lexicographically by bytes
//   - Array: element by element, then shorter first
//   - Map: entry by entry (key, then value), then shorter first
func Compare[S Storage](a, b Variant[S]) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}

	switch a.kind {
	case KindNil:
		return 0
	case KindBool, KindUint:
		return cmp.Compare(a.bits, b.bits)
	case KindInt:
		return cmp.Compare(int64(a.bits), int64(b.bits)) //nolint:gosec
	case KindFloat:
		return cmp.Compare(math.Float64frombits(a.bits), math.Float64frombits(b.bits))
	case KindStr, KindBin:
		return bytes.Compare(a.data, b.data)
	case KindExt:
		if c := cmp.Compare(a.ext, b.ext); c != 0 {
			return c
		}

		return bytes.Compare(a.data, b.data)
	case KindArray:
		n := min(len(a.arr), len(b.arr))
		for i := range n {
			if c := Compare(a.arr[i], b.arr[i]); c != 0 {
				return c
			}
		}

		return cmp.Compare(len(a.arr), len(b.arr))
	case KindMap:
		n := min(len(a.kv), len(b.kv))
		for i := range n {
			if c := Compare(a.kv[i].Key, b.kv[i].Key); c != 0 {
				return c
			}
			if c := Compare(a.kv[i].Val, b.kv[i].Val); c != 0 {
				return c
			}
		}

		return cmp.Compare(len(a.kv), len(b.kv))
	default:
		return 0
	}
}

// Equal reports whether a and b are equal under Compare.
func Equal[S Storage](a, b Variant[S]) bool {
	return Compare(a, b) == 0
}

// Compare compares v with o. See the package-level Compare.
func (v Variant[S]) Compare(o Variant[S]) int {
	return Compare(v, o)
}

// Equal reports whether v and o are equal.
func (v Variant[S]) Equal(o Variant[S]) bool {
	return Compare(v, o) == 0
}

// Less reports whether v sorts before o.
func (v Variant[S]) Less(o Variant[S]) bool {
	return Compare(v, o) < 0
}
