package frame

import (
	"testing"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/stretchr/testify/require"
)

func TestHeader_Bytes(t *testing.T) {
	h := Header{
		Version:     VersionV1,
		Compression: format.CompressionZstd,
		PayloadLen:  0x0102,
		RawLen:      0x0a0b0c0d,
		Checksum:    0x1122334455667788,
	}

	data := h.Bytes()
	require.Len(t, data, HeaderSize)
	require.Equal(t, []byte{
		'M', 'V', 0x01, 0x02,
		0x00, 0x00, 0x01, 0x02,
		0x0a, 0x0b, 0x0c, 0x0d,
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	}, data)

	parsed := Header{}
	require.NoError(t, parsed.Parse(data))
	require.Equal(t, h, parsed)
}

func TestHeader_Parse(t *testing.T) {
	valid := func() []byte {
		h := Header{Version: VersionV1, Compression: format.CompressionNone, PayloadLen: 3, RawLen: 3}
		return h.Bytes()
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"valid", func(b []byte) []byte { return b }, nil},
		{"too short", func(b []byte) []byte { return b[:HeaderSize-1] }, errs.ErrInvalidFrameHeader},
		{"too long", func(b []byte) []byte { return append(b, 0) }, errs.ErrInvalidFrameHeader},
		{"bad magic", func(b []byte) []byte { b[1] = 'X'; return b }, errs.ErrInvalidFrameHeader},
		{"future version", func(b []byte) []byte { b[2] = 2; return b }, errs.ErrInvalidFrameVersion},
		{"unknown compression", func(b []byte) []byte { b[3] = 0x09; return b }, errs.ErrInvalidFrameHeader},
		{"zero compression", func(b []byte) []byte { b[3] = 0x00; return b }, errs.ErrInvalidFrameHeader},
		{"uncompressed length mismatch", func(b []byte) []byte { b[11] = 4; return b }, errs.ErrInvalidFrameHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Header{}
			err := h.Parse(tt.mutate(valid()))
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseHeader(t *testing.T) {
	h := Header{Version: VersionV1, Compression: format.CompressionLZ4, PayloadLen: 10, RawLen: 40, Checksum: 7}
	data := append(h.Bytes(), make([]byte, 10)...)

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	_, err = ParseHeader(data[:5])
	require.ErrorIs(t, err, errs.ErrShortBuffer)
}
