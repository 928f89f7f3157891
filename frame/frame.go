package frame

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/mpvalue/compress"
	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/arloliu/mpvalue/internal/hash"
	"github.com/arloliu/mpvalue/internal/options"
	"github.com/arloliu/mpvalue/internal/pool"
	"github.com/arloliu/mpvalue/variant"
	"github.com/arloliu/mpvalue/wire"
)

// Encode encodes v and wraps the encoding in a frame.
//
// When the configured codec does not make the payload smaller, the payload is
// stored uncompressed and the header records format.CompressionNone.
func Encode[S variant.Storage](v variant.Variant[S], opts ...Option) ([]byte, error) {
	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	if err := build(bb, v, opts); err != nil {
		return nil, err
	}

	return bytes.Clone(bb.Bytes()), nil
}

// Write encodes v as a frame and writes it to w.
func Write[S variant.Storage](w io.Writer, v variant.Variant[S], opts ...Option) (int64, error) {
	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	if err := build(bb, v, opts); err != nil {
		return 0, err
	}

	return bb.WriteTo(w)
}

func build[S variant.Storage](bb *pool.ByteBuffer, v variant.Variant[S], opts []Option) error {
	cfg, err := options.Build(defaultConfig, opts...)
	if err != nil {
		return err
	}

	p := wire.NewPacker()
	defer p.Release()

	if err := v.EncodeTo(p); err != nil {
		return err
	}
	raw := p.Bytes()
	if uint64(len(raw)) > math.MaxUint32 {
		return fmt.Errorf("%w: frame payload of %d bytes", errs.ErrTooLarge, len(raw))
	}

	codec, err := compress.GetCodec(cfg.Compression)
	if err != nil {
		return err
	}

	payload, err := codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("compress frame payload: %w", err)
	}

	ct := cfg.Compression
	if len(payload) >= len(raw) {
		payload, ct = raw, format.CompressionNone
	}

	h := Header{
		Version:     VersionV1,
		Compression: ct,
		PayloadLen:  uint32(len(payload)), //nolint:gosec
		RawLen:      uint32(len(raw)),     //nolint:gosec
		Checksum:    hash.Sum64(raw),
	}

	bb.Grow(HeaderSize + len(payload))
	bb.B = h.AppendTo(bb.B)
	bb.MustWrite(payload)

	return nil
}

// Decode decodes a buffer holding exactly one frame.
//
// For Ref results of uncompressed frames the payloads borrow from data;
// compressed frames are decoded from a fresh buffer owned by the result.
func Decode[S variant.Storage](data []byte, opts ...Option) (variant.Variant[S], error) {
	v, n, err := DecodeNext[S](data, opts...)
	if err != nil {
		return v, err
	}

	if n != len(data) {
		return variant.Variant[S]{}, fmt.Errorf("%w: %d bytes after frame", errs.ErrTrailingData, len(data)-n)
	}

	return v, nil
}

// DecodeNext decodes the frame at the start of data and returns the value and
// the number of bytes the frame occupies.
func DecodeNext[S variant.Storage](data []byte, opts ...Option) (variant.Variant[S], int, error) {
	cfg, err := options.Build(defaultConfig, opts...)
	if err != nil {
		return variant.Variant[S]{}, 0, err
	}

	return decodeNext[S](data, cfg)
}

// DecodeAll decodes a sequence of concatenated frames. It returns the values
// decoded before the first failing frame along with the error.
func DecodeAll[S variant.Storage](data []byte, opts ...Option) ([]variant.Variant[S], error) {
	cfg, err := options.Build(defaultConfig, opts...)
	if err != nil {
		return nil, err
	}

	var out []variant.Variant[S]
	for off := 0; off < len(data); {
		v, n, err := decodeNext[S](data[off:], cfg)
		if err != nil {
			return out, fmt.Errorf("frame at offset %d: %w", off, err)
		}
		out = append(out, v)
		off += n
	}

	return out, nil
}

func decodeNext[S variant.Storage](data []byte, cfg *Config) (variant.Variant[S], int, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return variant.Variant[S]{}, 0, err
	}

	if h.RawLen > cfg.MaxRawSize {
		return variant.Variant[S]{}, 0, fmt.Errorf("%w: frame declares %d raw bytes, limit %d",
			errs.ErrLimitExceeded, h.RawLen, cfg.MaxRawSize)
	}

	end := HeaderSize + int(h.PayloadLen)
	if len(data) < end {
		return variant.Variant[S]{}, 0, fmt.Errorf("%w: frame payload needs %d bytes, have %d",
			errs.ErrShortBuffer, h.PayloadLen, len(data)-HeaderSize)
	}

	raw, err := payloadOf(h, data[HeaderSize:end])
	if err != nil {
		return variant.Variant[S]{}, 0, err
	}

	v, n, err := variant.Unmarshal[S](raw, cfg.Decode...)
	if err != nil {
		return variant.Variant[S]{}, 0, err
	}

	if n != len(raw) {
		return variant.Variant[S]{}, 0, fmt.Errorf("%w: %d bytes after value in frame payload", errs.ErrTrailingData, len(raw)-n)
	}

	return v, end, nil
}

// payloadOf decompresses and verifies the payload described by h. The
// decompressed size is capped at h.RawLen, which decodeNext has already
// checked against MaxRawSize.
func payloadOf(h Header, payload []byte) ([]byte, error) {
	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidFrameHeader, err)
	}

	raw, err := codec.DecompressLimit(payload, int(h.RawLen))
	if err != nil {
		return nil, fmt.Errorf("decompress %s frame payload: %w", h.Compression, err)
	}

	if len(raw) != int(h.RawLen) {
		return nil, fmt.Errorf("%w: payload decompressed to %d bytes, header declares %d",
			errs.ErrInvalidFrameHeader, len(raw), h.RawLen)
	}

	if sum := hash.Sum64(raw); sum != h.Checksum {
		return nil, fmt.Errorf("%w: computed %#016x, header has %#016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	return raw, nil
}
