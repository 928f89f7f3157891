package variant

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/wire"
)

// EncodeTo appends the MessagePack encoding of v to p.
//
// Scalars are written with the matching Packer method. Arrays write their
// header and then every element in order; maps write their header and then
// each key followed by its value, in entry order. Floats are always written
// as float64.
func (v Variant[S]) EncodeTo(p *wire.Packer) error {
	switch v.kind {
	case KindNil:
		p.PackNil()
	case KindBool:
		p.PackBool(v.bits != 0)
	case KindInt:
		p.PackInt64(int64(v.bits)) //nolint:gosec
	case KindUint:
		p.PackUint64(v.bits)
	case KindFloat:
		p.PackFloat64(math.Float64frombits(v.bits))
	case KindStr:
		return p.PackStr(v.data)
	case KindBin:
		return p.PackBin(v.data)
	case KindExt:
		return p.PackExt(v.ext, v.data)
	case KindArray:
		if err := p.PackArrayHeader(len(v.arr)); err != nil {
			return err
		}
		for i := range v.arr {
			if err := v.arr[i].EncodeTo(p); err != nil {
				return err
			}
		}
	case KindMap:
		if err := p.PackMapHeader(len(v.kv)); err != nil {
			return err
		}
		for i := range v.kv {
			if err := v.kv[i].Key.EncodeTo(p); err != nil {
				return err
			}
			if err := v.kv[i].Val.EncodeTo(p); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: kind %d", errs.ErrUnsupportedCategory, v.kind)
	}

	return nil
}

// Marshal returns the MessagePack encoding of v.
func Marshal[S Storage](v Variant[S]) ([]byte, error) {
	p := wire.NewPacker()
	defer p.Release()

	if err := v.EncodeTo(p); err != nil {
		return nil, err
	}

	return bytes.Clone(p.Bytes()), nil
}

// AppendMarshal appends the MessagePack encoding of v to dst.
// On failure dst is returned unchanged.
func AppendMarshal[S Storage](dst []byte, v Variant[S]) ([]byte, error) {
	p := wire.NewPackerWithBuffer(dst)
	if err := v.EncodeTo(p); err != nil {
		return dst, err
	}

	return p.Bytes(), nil
}
