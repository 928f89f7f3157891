package fixed

import (
	"bytes"
	"fmt"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/arloliu/mpvalue/wire"
)

// Decode converts the array node obj into dst, element by element.
//
// The required length N is len(dst). Decode fails with errs.ErrType when obj
// is not an array or when its length differs from N; it never truncates or
// pads. When an element fails to decode, the error is returned and dst is left
// unchanged.
func Decode[T any](obj wire.Object, dst []T, c Codec[T]) error {
	if obj.Category != format.CategoryArray {
		return fmt.Errorf("%w: want array of %d, have %s", errs.ErrType, len(dst), obj.Category)
	}
	if len(obj.Array) != len(dst) {
		return fmt.Errorf("%w: want array of %d, have %d elements", errs.ErrType, len(dst), len(obj.Array))
	}

	scratch := make([]T, len(dst))
	for i := range obj.Array {
		v, err := c.Decode(obj.Array[i])
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		scratch[i] = v
	}
	copy(dst, scratch)

	return nil
}

// Encode writes src as an array of exactly len(src) elements.
func Encode[T any](p *wire.Packer, src []T, c Codec[T]) error {
	if err := p.PackArrayHeader(len(src)); err != nil {
		return err
	}
	for i := range src {
		if err := c.Encode(p, src[i]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	return nil
}

// ToObject projects src into an array node allocated from z.
func ToObject[T any](z *wire.Zone, src []T, c Codec[T]) (wire.Object, error) {
	if len(src) == 0 {
		return wire.ArrayObject(nil), nil
	}
	if z == nil {
		return wire.Object{}, fmt.Errorf("%w: array cannot be projected without a zone", errs.ErrType)
	}

	elems := z.Objects(len(src))
	for i := range src {
		obj, err := c.Project(z, src[i])
		if err != nil {
			return wire.Object{}, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = obj
	}

	return wire.ArrayObject(elems), nil
}

// Unmarshal parses the first value in data and decodes it into dst like
// Decode. It returns the number of bytes consumed.
func Unmarshal[T any](data []byte, dst []T, c Codec[T], opts ...wire.ParseOption) (int, error) {
	obj, n, err := wire.Unpack(data, opts...)
	if err != nil {
		return n, err
	}

	return n, Decode(obj, dst, c)
}

// Marshal returns the encoding of src as a fixed-length array.
func Marshal[T any](src []T, c Codec[T]) ([]byte, error) {
	p := wire.NewPacker()
	defer p.Release()

	if err := Encode(p, src, c); err != nil {
		return nil, err
	}

	return bytes.Clone(p.Bytes()), nil
}
