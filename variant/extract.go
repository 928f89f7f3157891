package variant

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/arloliu/mpvalue/errs"
)

func (v Variant[S]) mismatch(want Kind) error {
	return fmt.Errorf("%w: want %s, have %s", errs.ErrType, want, v.kind)
}

// AsNil returns nil if v is the nil value and errs.ErrType otherwise.
func (v Variant[S]) AsNil() error {
	if v.kind != KindNil {
		return v.mismatch(KindNil)
	}

	return nil
}

// AsBool returns the boolean held by v.
func (v Variant[S]) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}

	return v.bits != 0, nil
}

// AsInt returns the negative integer held by v.
//
// Non-negative integers are always KindUint; AsInt fails on them like on any
// other kind. Use Int64 for a conversion that accepts both integer kinds.
func (v Variant[S]) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}

	return int64(v.bits), nil //nolint:gosec
}

// AsUint returns the non-negative integer held by v.
func (v Variant[S]) AsUint() (uint64, error) {
	if v.kind != KindUint {
		return 0, v.mismatch(KindUint)
	}

	return v.bits, nil
}

// AsFloat returns the float held by v.
func (v Variant[S]) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, v.mismatch(KindFloat)
	}

	return math.Float64frombits(v.bits), nil
}

// AsStr returns the string held by v without copying it.
func (v Variant[S]) AsStr() (string, error) {
	if v.kind != KindStr {
		return "", v.mismatch(KindStr)
	}
	if len(v.data) == 0 {
		return "", nil
	}

	return unsafe.String(unsafe.SliceData(v.data), len(v.data)), nil
}

// AsStrBytes returns the bytes of the string held by v.
func (v Variant[S]) AsStrBytes() ([]byte, error) {
	if v.kind != KindStr {
		return nil, v.mismatch(KindStr)
	}

	return v.data, nil
}

// AsBin returns the binary payload held by v.
func (v Variant[S]) AsBin() ([]byte, error) {
	if v.kind != KindBin {
		return nil, v.mismatch(KindBin)
	}

	return v.data, nil
}

// AsExt returns the extension held by v.
func (v Variant[S]) AsExt() (Extension, error) {
	if v.kind != KindExt {
		return Extension{}, v.mismatch(KindExt)
	}

	return Extension{Type: v.ext, Data: v.data}, nil
}

// AsArray returns the elements of an array value.
func (v Variant[S]) AsArray() ([]Variant[S], error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}

	return v.arr, nil
}

// AsMap returns the entries of a map value in order.
func (v Variant[S]) AsMap() ([]Pair[S], error) {
	if v.kind != KindMap {
		return nil, v.mismatch(KindMap)
	}

	return v.kv, nil
}

// Int64 returns the integer held by v as an int64. It accepts both integer
// kinds and fails with errs.ErrType on other kinds, and on positive integers
// above math.MaxInt64.
func (v Variant[S]) Int64() (int64, error) {
	switch v.kind { //nolint: exhaustive
	case KindInt:
		return int64(v.bits), nil //nolint:gosec
	case KindUint:
		if v.bits > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", errs.ErrType, v.bits)
		}

		return int64(v.bits), nil
	default:
		return 0, fmt.Errorf("%w: want integer, have %s", errs.ErrType, v.kind)
	}
}
