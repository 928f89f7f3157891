package fixed

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/arloliu/mpvalue/variant"
	"github.com/arloliu/mpvalue/wire"
)

// Codec converts one element type to and from MessagePack.
type Codec[T any] struct {
	// Decode converts a parsed node into an element.
	Decode func(obj wire.Object) (T, error)
	// Encode appends the encoding of an element.
	Encode func(p *wire.Packer, v T) error
	// Project converts an element into a node allocated from a zone.
	Project func(z *wire.Zone, v T) (wire.Object, error)
}

func mismatch(want string, obj wire.Object) error {
	return fmt.Errorf("%w: want %s, have %s", errs.ErrType, want, obj.Category)
}

// Bool is the codec of booleans.
func Bool() Codec[bool] {
	return Codec[bool]{
		Decode: func(obj wire.Object) (bool, error) {
			if obj.Category != format.CategoryBool {
				return false, mismatch("bool", obj)
			}

			return obj.Bool, nil
		},
		Encode: func(p *wire.Packer, v bool) error {
			p.PackBool(v)
			return nil
		},
		Project: func(_ *wire.Zone, v bool) (wire.Object, error) {
			return wire.BoolObject(v), nil
		},
	}
}

// Int64 is the codec of signed integers. Positive integers above
// math.MaxInt64 fail with errs.ErrType.
func Int64() Codec[int64] {
	return Codec[int64]{
		Decode: func(obj wire.Object) (int64, error) {
			switch obj.Category { //nolint: exhaustive
			case format.CategoryNegInt:
				return obj.Int, nil
			case format.CategoryPosInt:
				if obj.Uint > math.MaxInt64 {
					return 0, fmt.Errorf("%w: %d overflows int64", errs.ErrType, obj.Uint)
				}

				return int64(obj.Uint), nil
			default:
				return 0, mismatch("integer", obj)
			}
		},
		Encode: func(p *wire.Packer, v int64) error {
			p.PackInt64(v)
			return nil
		},
		Project: func(_ *wire.Zone, v int64) (wire.Object, error) {
			return wire.IntObject(v), nil
		},
	}
}

// Uint64 is the codec of unsigned integers. Negative integers fail with
// errs.ErrType.
func Uint64() Codec[uint64] {
	return Codec[uint64]{
		Decode: func(obj wire.Object) (uint64, error) {
			if obj.Category != format.CategoryPosInt {
				return 0, mismatch("positive integer", obj)
			}

			return obj.Uint, nil
		},
		Encode: func(p *wire.Packer, v uint64) error {
			p.PackUint64(v)
			return nil
		},
		Project: func(_ *wire.Zone, v uint64) (wire.Object, error) {
			return wire.UintObject(v), nil
		},
	}
}

// Float64 is the codec of floats. Integer nodes are accepted and converted.
func Float64() Codec[float64] {
	return Codec[float64]{
		Decode: func(obj wire.Object) (float64, error) {
			switch obj.Category { //nolint: exhaustive
			case format.CategoryFloat:
				return obj.Float, nil
			case format.CategoryPosInt:
				return float64(obj.Uint), nil
			case format.CategoryNegInt:
				return float64(obj.Int), nil
			default:
				return 0, mismatch("float", obj)
			}
		},
		Encode: func(p *wire.Packer, v float64) error {
			p.PackFloat64(v)
			return nil
		},
		Project: func(_ *wire.Zone, v float64) (wire.Object, error) {
			return wire.FloatObject(v), nil
		},
	}
}

// String is the codec of strings. Both str and bin nodes decode to a string.
func String() Codec[string] {
	return Codec[string]{
		Decode: func(obj wire.Object) (string, error) {
			if obj.Category != format.CategoryStr && obj.Category != format.CategoryBin {
				return "", mismatch("str", obj)
			}

			return string(obj.Bytes), nil
		},
		Encode: func(p *wire.Packer, v string) error {
			return p.PackString(v)
		},
		Project: func(z *wire.Zone, v string) (wire.Object, error) {
			return wire.StrObject(z.CopyBytes([]byte(v))), nil
		},
	}
}

// Bytes is the codec of byte slices, encoded as bin. Both bin and str nodes
// decode to a copy of their payload.
func Bytes() Codec[[]byte] {
	return Codec[[]byte]{
		Decode: func(obj wire.Object) ([]byte, error) {
			if obj.Category != format.CategoryBin && obj.Category != format.CategoryStr {
				return nil, mismatch("bin", obj)
			}

			return bytes.Clone(obj.Bytes), nil
		},
		Encode: func(p *wire.Packer, v []byte) error {
			return p.PackBin(v)
		},
		Project: func(z *wire.Zone, v []byte) (wire.Object, error) {
			return wire.BinObject(z.CopyBytes(v)), nil
		},
	}
}

// Variant is the codec of dynamic values of flavor S. opts apply to every
// decoded element.
func Variant[S variant.Storage](opts ...variant.DecodeOption) Codec[variant.Variant[S]] {
	return Codec[variant.Variant[S]]{
		Decode: func(obj wire.Object) (variant.Variant[S], error) {
			return variant.Decode[S](obj, opts...)
		},
		Encode: func(p *wire.Packer, v variant.Variant[S]) error {
			return v.EncodeTo(p)
		},
		Project: func(z *wire.Zone, v variant.Variant[S]) (wire.Object, error) {
			return v.ToObject(z)
		},
	}
}
