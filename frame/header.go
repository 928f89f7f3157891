package frame

import (
	"fmt"

	"github.com/arloliu/mpvalue/endian"
	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
)

const (
	Magic0 = 'M'
	Magic1 = 'V'

	// VersionV1 is the only frame version written and accepted.
	VersionV1 = 0x1

	// HeaderSize is the fixed size of a frame header in bytes.
	HeaderSize = 20
)

// Header is the fixed-size prefix of every frame.
//
// All multi-byte fields are big-endian, like the MessagePack payload they
// describe.
type Header struct {
	Version     uint8                  // byte offset 2
	Compression format.CompressionType // byte offset 3
	// PayloadLen is the number of payload bytes following the header, after compression.
	PayloadLen uint32 // byte offset 4-7
	// RawLen is the length of the MessagePack encoding before compression.
	RawLen uint32 // byte offset 8-11
	// Checksum is the xxHash64 of the uncompressed encoding.
	Checksum uint64 // byte offset 12-19
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidFrameHeader on bad size, magic or compression;
//     ErrInvalidFrameVersion on an unknown version
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidFrameHeader, HeaderSize, len(data))
	}

	if data[0] != Magic0 || data[1] != Magic1 {
		return fmt.Errorf("%w: bad magic %#02x%02x", errs.ErrInvalidFrameHeader, data[0], data[1])
	}

	engine := endian.Wire()
	h.Version = data[2]
	h.Compression = format.CompressionType(data[3])
	h.PayloadLen = engine.Uint32(data[4:8])
	h.RawLen = engine.Uint32(data[8:12])
	h.Checksum = engine.Uint64(data[12:20])

	return h.Validate()
}

// Validate checks the fields that do not depend on the payload.
func (h *Header) Validate() error {
	if h.Version != VersionV1 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidFrameVersion, h.Version)
	}

	if !h.Compression.Valid() {
		return fmt.Errorf("%w: unknown compression %#02x", errs.ErrInvalidFrameHeader, uint8(h.Compression))
	}

	if h.Compression == format.CompressionNone && h.PayloadLen != h.RawLen {
		return fmt.Errorf("%w: uncompressed payload of %d bytes declares raw length %d",
			errs.ErrInvalidFrameHeader, h.PayloadLen, h.RawLen)
	}

	return nil
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := endian.Wire()

	dst = append(dst, Magic0, Magic1, h.Version, uint8(h.Compression))
	dst = engine.AppendUint32(dst, h.PayloadLen)
	dst = engine.AppendUint32(dst, h.RawLen)

	return engine.AppendUint64(dst, h.Checksum)
}

// Bytes serializes the header into a new byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// ParseHeader parses a Header from the start of data.
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrShortBuffer if data holds less than HeaderSize bytes, or
//     the errors of Header.Parse
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: frame header needs %d bytes, have %d", errs.ErrShortBuffer, HeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
