package variant

import (
	"math"

	"github.com/arloliu/mpvalue/internal/hash"
)

// canonicalNaN is hashed for every NaN since Compare treats all NaNs as equal.
const canonicalNaN = 0x7ff8000000000001

// Hash returns an xxHash64 digest of v. Values that are Equal hash equally.
func (v Variant[S]) Hash() uint64 {
	h := hash.Get()
	defer hash.Put(h)

	v.writeHash(h)

	return h.Sum64()
}

func (v Variant[S]) writeHash(h *hash.Hasher) {
	h.WriteTag(byte(v.kind))

	switch v.kind {
	case KindNil:
	case KindBool, KindInt, KindUint:
		h.WriteUint64(v.bits)
	case KindFloat:
		f := math.Float64frombits(v.bits)
		switch {
		case math.IsNaN(f):
			h.WriteUint64(canonicalNaN)
		case f == 0:
			h.WriteUint64(0)
		default:
			h.WriteUint64(v.bits)
		}
	case KindStr, KindBin:
		h.WriteBytes(v.data)
	case KindExt:
		h.WriteTag(byte(v.ext))
		h.WriteBytes(v.data)
	case KindArray:
		h.WriteUint64(uint64(len(v.arr)))
		for i := range v.arr {
			v.arr[i].writeHash(h)
		}
	case KindMap:
		h.WriteUint64(uint64(len(v.kv)))
		for i := range v.kv {
			v.kv[i].Key.writeHash(h)
			v.kv[i].Val.writeHash(h)
		}
	}
}
