package wire

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func packed(t *testing.T, fn func(p *Packer) error) []byte {
	t.Helper()

	p := NewPacker()
	defer p.Release()
	require.NoError(t, fn(p))

	return bytes.Clone(p.Bytes())
}

func TestPacker_Integers(t *testing.T) {
	tests := []struct {
		name string
		val  int64
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"positive fixint max", 127, []byte{0x7f}},
		{"uint8", 128, []byte{format.Uint8, 0x80}},
		{"uint16", 256, []byte{format.Uint16, 0x01, 0x00}},
		{"uint32", 65536, []byte{format.Uint32, 0x00, 0x01, 0x00, 0x00}},
		{"uint64", 1 << 32, []byte{format.Uint64, 0, 0, 0, 1, 0, 0, 0, 0}},
		{"negative fixint", -1, []byte{0xff}},
		{"negative fixint min", -32, []byte{0xe0}},
		{"int8", -33, []byte{format.Int8, 0xdf}},
		{"int16", -129, []byte{format.Int16, 0xff, 0x7f}},
		{"int32", -32769, []byte{format.Int32, 0xff, 0xff, 0x7f, 0xff}},
		{"int64", math.MinInt64, []byte{format.Int64, 0x80, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := packed(t, func(p *Packer) error {
				p.PackInt64(tt.val)
				return nil
			})
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("max uint64", func(t *testing.T) {
		got := packed(t, func(p *Packer) error {
			p.PackUint64(math.MaxUint64)
			return nil
		})
		require.Equal(t, []byte{format.Uint64, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, got)
	})
}

func TestPacker_ReadBackWithMsgp(t *testing.T) {
	data := packed(t, func(p *Packer) error {
		p.PackInt64(300)
		p.PackInt64(-70000)
		if err := p.PackString("key"); err != nil {
			return err
		}

		return p.PackExt(-3, []byte{1, 2, 3, 4})
	})
	require.Equal(t, []byte{format.Uint16, 0x01, 0x2c}, data[:3], "non-negative int64 uses the unsigned formats")

	u, rest, err := msgp.ReadUint64Bytes(data)
	require.NoError(t, err)
	require.Equal(t, uint64(300), u)

	i, rest, err := msgp.ReadInt64Bytes(rest)
	require.NoError(t, err)
	require.Equal(t, int64(-70000), i)

	s, rest, err := msgp.ReadStringBytes(rest)
	require.NoError(t, err)
	require.Equal(t, "key", s)

	ext := &msgp.RawExtension{Type: -3}
	rest, err = msgp.ReadExtensionBytes(rest, ext)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, ext.Data)
	require.Empty(t, rest)
}

func TestPacker_Scalars(t *testing.T) {
	got := packed(t, func(p *Packer) error {
		p.PackNil()
		p.PackBool(true)
		p.PackBool(false)
		p.PackFloat32(1.5)
		p.PackFloat64(-2.25)

		return nil
	})

	want := []byte{format.Nil, format.True, format.False,
		format.Float32, 0x3f, 0xc0, 0x00, 0x00,
		format.Float64, 0xc0, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	require.Equal(t, want, got)
}

func TestPacker_StrHeaders(t *testing.T) {
	tests := []struct {
		name   string
		length int
		head   []byte
	}{
		{"empty fixstr", 0, []byte{0xa0}},
		{"fixstr max", 31, []byte{0xbf}},
		{"str8", 32, []byte{format.Str8, 32}},
		{"str16", 256, []byte{format.Str16, 0x01, 0x00}},
		{"str32", 65536, []byte{format.Str32, 0x00, 0x01, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := strings.Repeat("x", tt.length)
			got := packed(t, func(p *Packer) error { return p.PackString(s) })
			require.Equal(t, tt.head, got[:len(tt.head)])
			require.Len(t, got, len(tt.head)+tt.length)

			viaBytes := packed(t, func(p *Packer) error { return p.PackStr([]byte(s)) })
			require.Equal(t, got, viaBytes)
		})
	}
}

func TestPacker_Bin(t *testing.T) {
	got := packed(t, func(p *Packer) error { return p.PackBin([]byte{1, 2, 3}) })
	require.Equal(t, []byte{format.Bin8, 3, 1, 2, 3}, got)

	big := make([]byte, 300)
	got = packed(t, func(p *Packer) error { return p.PackBin(big) })
	require.Equal(t, []byte{format.Bin16, 0x01, 0x2c}, got[:3])
}

func TestPacker_Ext(t *testing.T) {
	tests := []struct {
		name string
		size int
		head []byte
	}{
		{"fixext1", 1, []byte{format.FixExt1, 0x05}},
		{"fixext2", 2, []byte{format.FixExt2, 0x05}},
		{"fixext4", 4, []byte{format.FixExt4, 0x05}},
		{"fixext8", 8, []byte{format.FixExt8, 0x05}},
		{"fixext16", 16, []byte{format.FixExt16, 0x05}},
		{"ext8 empty", 0, []byte{format.Ext8, 0x00, 0x05}},
		{"ext8", 3, []byte{format.Ext8, 0x03, 0x05}},
		{"ext16", 256, []byte{format.Ext16, 0x01, 0x00, 0x05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{0xaa}, tt.size)
			got := packed(t, func(p *Packer) error { return p.PackExt(5, data) })
			require.Equal(t, tt.head, got[:len(tt.head)])
			require.Equal(t, data, got[len(tt.head):])
		})
	}
}

func TestPacker_ContainerHeaders(t *testing.T) {
	got := packed(t, func(p *Packer) error {
		if err := p.PackArrayHeader(2); err != nil {
			return err
		}
		if err := p.PackArrayHeader(16); err != nil {
			return err
		}
		if err := p.PackMapHeader(1); err != nil {
			return err
		}

		return p.PackMapHeader(70000)
	})

	want := []byte{0x92, format.Array16, 0x00, 0x10, 0x81, format.Map32, 0x00, 0x01, 0x11, 0x70}
	require.Equal(t, want, got)

	p := NewPacker()
	defer p.Release()
	require.ErrorIs(t, p.PackArrayHeader(-1), errs.ErrTooLarge)
	require.ErrorIs(t, p.PackMapHeader(-1), errs.ErrTooLarge)
	require.Equal(t, 0, p.Len())
}

func TestPacker_WithBuffer(t *testing.T) {
	prefix := []byte{0xde, 0xad}
	p := NewPackerWithBuffer(prefix)
	p.PackNil()
	require.Equal(t, []byte{0xde, 0xad, format.Nil}, p.Bytes())

	p.Reset()
	require.Equal(t, 0, p.Len())
	p.Release()
}

func TestPacker_PackObject(t *testing.T) {
	obj := MapObject([]ObjectKV{
		{Key: StrObject([]byte("a")), Val: ArrayObject([]Object{IntObject(-5), UintObject(7), NilObject()})},
		{Key: BinObject([]byte{9}), Val: ExtObject(-1, []byte{1, 2})},
		{Key: BoolObject(true), Val: FloatObject(0.5)},
	})

	data := packed(t, func(p *Packer) error { return p.PackObject(obj) })

	parsed, n, err := Unpack(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, obj, parsed)

	p := NewPacker()
	defer p.Release()
	require.ErrorIs(t, p.PackObject(Object{Category: format.Category(99)}), errs.ErrUnsupportedCategory)
}

func BenchmarkPacker_Mixed(b *testing.B) {
	p := NewPacker()
	defer p.Release()
	payload := []byte("benchmark payload")

	for b.Loop() {
		p.Reset()
		_ = p.PackMapHeader(3)
		_ = p.PackString("id")
		p.PackUint64(123456)
		_ = p.PackString("score")
		p.PackFloat64(98.6)
		_ = p.PackString("blob")
		_ = p.PackBin(payload)
	}
}
