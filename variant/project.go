package variant

import (
	"fmt"
	"math"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/wire"
)

// Shallow projects v into a wire.Object without allocating.
//
// Only Nil, Bool, Int, Uint and Float values can be projected this way. Str,
// Bin, Ext, Array and Map need memory for their payload or children and fail
// with errs.ErrType; use ToObject with a Zone for them.
func (v Variant[S]) Shallow() (wire.Object, error) {
	switch v.kind {
	case KindNil:
		return wire.NilObject(), nil
	case KindBool:
		return wire.BoolObject(v.bits != 0), nil
	case KindInt:
		return wire.IntObject(int64(v.bits)), nil //nolint:gosec
	case KindUint:
		return wire.UintObject(v.bits), nil
	case KindFloat:
		return wire.FloatObject(math.Float64frombits(v.bits)), nil
	case KindStr, KindBin, KindExt, KindArray, KindMap:
		return wire.Object{}, fmt.Errorf("%w: %s cannot be projected without a zone", errs.ErrType, v.kind)
	default:
		return wire.Object{}, fmt.Errorf("%w: kind %d", errs.ErrUnsupportedCategory, v.kind)
	}
}

// ToObject projects v and all of its children into a wire.Object allocated
// from z.
//
// The payloads of a Value are copied into z; those of a Ref keep pointing at
// the memory the Ref borrows from. The result stays valid until z is
// released. A nil zone behaves like Shallow.
func (v Variant[S]) ToObject(z *wire.Zone) (wire.Object, error) {
	if z == nil {
		return v.Shallow()
	}

	switch v.kind {
	case KindStr:
		return wire.StrObject(zoneBytes[S](z, v.data)), nil
	case KindBin:
		return wire.BinObject(zoneBytes[S](z, v.data)), nil
	case KindExt:
		return wire.ExtObject(v.ext, zoneBytes[S](z, v.data)), nil
	case KindArray:
		elems := z.Objects(len(v.arr))
		for i := range v.arr {
			obj, err := v.arr[i].ToObject(z)
			if err != nil {
				return wire.Object{}, err
			}
			elems[i] = obj
		}

		return wire.ArrayObject(elems), nil
	case KindMap:
		entries := z.Pairs(len(v.kv))
		for i := range v.kv {
			key, err := v.kv[i].Key.ToObject(z)
			if err != nil {
				return wire.Object{}, err
			}
			val, err := v.kv[i].Val.ToObject(z)
			if err != nil {
				return wire.Object{}, err
			}
			entries[i] = wire.ObjectKV{Key: key, Val: val}
		}

		return wire.MapObject(entries), nil
	default:
		return v.Shallow()
	}
}

func zoneBytes[S Storage](z *wire.Zone, b []byte) []byte {
	if !owns[S]() {
		return b
	}
	if len(b) == 0 {
		return b[:0:0]
	}

	return z.CopyBytes(b)
}
