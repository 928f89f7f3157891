package wire

import (
	"fmt"
	"math"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/arloliu/mpvalue/internal/pool"
	"github.com/tinylib/msgp/msgp"
)

// Packer appends MessagePack encodings to a byte buffer.
//
// Every Pack method picks the smallest encoding for its argument, matching
// msgpack-c: non-negative signed integers use the unsigned formats, negative
// ones the smallest signed format that holds them.
//
// Note: The Packer is NOT thread-safe.
type Packer struct {
	buf    *pool.ByteBuffer
	pooled bool
}

// NewPacker creates a Packer backed by a pooled buffer.
// Call Release once the encoded bytes are no longer needed.
func NewPacker() *Packer {
	return &Packer{
		buf:    pool.GetPackBuffer(),
		pooled: true,
	}
}

// NewPackerWithBuffer creates a Packer that appends to dst.
func NewPackerWithBuffer(dst []byte) *Packer {
	return &Packer{
		buf: &pool.ByteBuffer{B: dst},
	}
}

// Bytes returns the encoded bytes. The slice is only valid until the next
// Pack call or Release.
func (p *Packer) Bytes() []byte {
	return p.buf.Bytes()
}

// Len returns the number of encoded bytes.
func (p *Packer) Len() int {
	return p.buf.Len()
}

// Reset discards the encoded bytes but keeps the buffer.
func (p *Packer) Reset() {
	p.buf.Reset()
}

// Release returns a pooled buffer to the pool. The Packer must not be used afterwards.
func (p *Packer) Release() {
	if p.pooled && p.buf != nil {
		pool.PutPackBuffer(p.buf)
	}
	p.buf = nil
}

// PackNil writes nil.
func (p *Packer) PackNil() {
	p.buf.B = msgp.AppendNil(p.buf.B)
}

// PackBool writes true or false.
func (p *Packer) PackBool(b bool) {
	p.buf.B = msgp.AppendBool(p.buf.B, b)
}

// PackUint64 writes u using the smallest unsigned format.
func (p *Packer) PackUint64(u uint64) {
	p.buf.B = msgp.AppendUint64(p.buf.B, u)
}

// PackInt64 writes i; non-negative values are written as unsigned.
func (p *Packer) PackInt64(i int64) {
	if i >= 0 {
		p.buf.B = msgp.AppendUint64(p.buf.B, uint64(i))
		return
	}
	p.buf.B = msgp.AppendInt64(p.buf.B, i)
}

// PackFloat32 writes f as a float32.
func (p *Packer) PackFloat32(f float32) {
	p.buf.B = msgp.AppendFloat32(p.buf.B, f)
}

// PackFloat64 writes f as a float64.
func (p *Packer) PackFloat64(f float64) {
	p.buf.B = msgp.AppendFloat64(p.buf.B, f)
}

// PackStr writes b as a string.
func (p *Packer) PackStr(b []byte) error {
	if err := checkSize(len(b), "str"); err != nil {
		return err
	}
	p.buf.B = msgp.AppendStringFromBytes(p.buf.B, b)

	return nil
}

// PackString writes s as a string.
func (p *Packer) PackString(s string) error {
	if err := checkSize(len(s), "str"); err != nil {
		return err
	}
	p.buf.B = msgp.AppendString(p.buf.B, s)

	return nil
}

// PackBin writes b as binary.
func (p *Packer) PackBin(data []byte) error {
	if err := checkSize(len(data), "bin"); err != nil {
		return err
	}
	p.buf.B = msgp.AppendBytes(p.buf.B, data)

	return nil
}

// PackExt writes an extension value of type typ. Payloads of 1, 2, 4, 8
// and 16 bytes use the fixext formats.
func (p *Packer) PackExt(typ int8, data []byte) error {
	if err := checkSize(len(data), "ext"); err != nil {
		return err
	}

	b, err := msgp.AppendExtension(p.buf.B, &msgp.RawExtension{Type: typ, Data: data})
	if err != nil {
		return fmt.Errorf("pack ext %d: %w", typ, err)
	}
	p.buf.B = b

	return nil
}

// PackArrayHeader writes the header of an array with n elements.
func (p *Packer) PackArrayHeader(n int) error {
	if err := checkSize(n, "array"); err != nil {
		return err
	}
	p.buf.B = msgp.AppendArrayHeader(p.buf.B, uint32(n)) //nolint:gosec

	return nil
}

// PackMapHeader writes the header of a map with n entries.
func (p *Packer) PackMapHeader(n int) error {
	if err := checkSize(n, "map"); err != nil {
		return err
	}
	p.buf.B = msgp.AppendMapHeader(p.buf.B, uint32(n)) //nolint:gosec

	return nil
}

// checkSize rejects lengths the 32-bit length fields cannot carry.
func checkSize(n int, what string) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: %s of length %d", errs.ErrTooLarge, what, n)
	}

	return nil
}

// PackObject writes a parsed node and its children.
func (p *Packer) PackObject(o Object) error {
	switch o.Category {
	case format.CategoryNil:
		p.PackNil()
	case format.CategoryBool:
		p.PackBool(o.Bool)
	case format.CategoryPosInt:
		p.PackUint64(o.Uint)
	case format.CategoryNegInt:
		p.PackInt64(o.Int)
	case format.CategoryFloat:
		p.PackFloat64(o.Float)
	case format.CategoryStr:
		return p.PackStr(o.Bytes)
	case format.CategoryBin:
		return p.PackBin(o.Bytes)
	case format.CategoryExt:
		return p.PackExt(o.ExtType, o.Bytes)
	case format.CategoryArray:
		if err := p.PackArrayHeader(len(o.Array)); err != nil {
			return err
		}
		for i := range o.Array {
			if err := p.PackObject(o.Array[i]); err != nil {
				return err
			}
		}
	case format.CategoryMap:
		if err := p.PackMapHeader(len(o.Map)); err != nil {
			return err
		}
		for i := range o.Map {
			if err := p.PackObject(o.Map[i].Key); err != nil {
				return err
			}
			if err := p.PackObject(o.Map[i].Val); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedCategory, o.Category)
	}

	return nil
}
