package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_EveryByte(t *testing.T) {
	want := func(b int) Category {
		switch {
		case b <= 0x7f, b >= 0xcc && b <= 0xcf:
			return CategoryPosInt
		case b <= 0x8f, b == 0xde, b == 0xdf:
			return CategoryMap
		case b <= 0x9f, b == 0xdc, b == 0xdd:
			return CategoryArray
		case b <= 0xbf, b >= 0xd9 && b <= 0xdb:
			return CategoryStr
		case b >= 0xe0, b >= 0xd0 && b <= 0xd3:
			return CategoryNegInt
		case b == 0xc0:
			return CategoryNil
		case b == 0xc2, b == 0xc3:
			return CategoryBool
		case b >= 0xc4 && b <= 0xc6:
			return CategoryBin
		case b >= 0xc7 && b <= 0xc9, b >= 0xd4 && b <= 0xd8:
			return CategoryExt
		case b == 0xca, b == 0xcb:
			return CategoryFloat
		default:
			return CategoryUnknown
		}
	}

	for b := range 256 {
		got, ok := Classify(byte(b))
		require.Equal(t, want(b), got, "format byte %#02x", b)
		require.Equal(t, b != 0xc1, ok, "format byte %#02x", b)
	}
}

func TestCategory(t *testing.T) {
	require.False(t, CategoryUnknown.Valid())
	require.False(t, Category(0x7f).Valid())
	for c := CategoryNil; c <= CategoryMap; c++ {
		require.True(t, c.Valid())
		require.NotEqual(t, "Unknown", c.String())
	}

	require.True(t, CategoryNegInt.IsScalar())
	require.False(t, CategoryStr.IsScalar())
	require.False(t, CategoryArray.IsScalar())
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
		ok   bool
	}{
		{"none", CompressionNone, true},
		{"ZSTD", CompressionZstd, true},
		{"s2", CompressionS2, true},
		{"Lz4", CompressionLZ4, true},
		{"snappy", CompressionSnappy, true},
		{"gzip", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCompressionType(tt.name)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.want, got)
				require.True(t, got.Valid())
			}
		})
	}

	require.False(t, CompressionType(0).Valid())
	require.Equal(t, "Unknown", CompressionType(9).String())
}
