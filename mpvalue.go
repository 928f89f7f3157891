// Package mpvalue provides dynamic MessagePack values that can own their
// payload bytes or borrow them from the buffer they were decoded from.
//
// # Core Features
//
//   - One generic value type, instantiated as Value (owning) and Ref (borrowing)
//   - Total ordering, equality and hashing across all ten value kinds
//   - Decoding from parsed nodes with depth and length limits
//   - Fixed-length sequence conversion (package fixed)
//   - Checksummed, optionally compressed frames (package frame)
//
// # Basic Usage
//
//	v := mpvalue.Value(variant.NewMap(
//	    variant.KV(variant.NewStr("id"), variant.NewInt(42)),
//	    variant.KV(variant.NewStr("tags"), variant.NewArray(variant.NewStr("a"))),
//	))
//	data, _ := mpvalue.Encode(v)
//
//	owned, _ := mpvalue.Decode(data) // independent of data
//	ref, _ := mpvalue.View(data)     // payloads point into data
//
// # Package Structure
//
// This package provides top-level wrappers for the most common calls. The
// variant package holds the value type itself, wire the parser and packer,
// and frame the envelope format.
package mpvalue

import (
	"fmt"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/arloliu/mpvalue/frame"
	"github.com/arloliu/mpvalue/variant"
)

type (
	// Value is a dynamic value that owns its payload bytes.
	Value = variant.Value
	// Ref is a dynamic value whose payload bytes borrow from a source buffer.
	Ref = variant.Ref
)

// Encode returns the MessagePack encoding of v.
func Encode[S variant.Storage](v variant.Variant[S]) ([]byte, error) {
	return variant.Marshal(v)
}

// Decode decodes data, which must hold exactly one value, into an owning Value.
//
// Returns:
//   - Value: The decoded value, independent of data
//   - error: A parse or decode error, or errs.ErrTrailingData if bytes follow the value
func Decode(data []byte, opts ...variant.DecodeOption) (Value, error) {
	return decodeExact[variant.Owned](data, opts)
}

// View decodes data, which must hold exactly one value, into a Ref.
//
// The Ref is only valid while data is alive and unmodified.
func View(data []byte, opts ...variant.DecodeOption) (Ref, error) {
	return decodeExact[variant.Borrowed](data, opts)
}

func decodeExact[S variant.Storage](data []byte, opts []variant.DecodeOption) (variant.Variant[S], error) {
	v, n, err := variant.Unmarshal[S](data, opts...)
	if err != nil {
		return variant.Variant[S]{}, err
	}

	if n != len(data) {
		return variant.Variant[S]{}, fmt.Errorf("%w: %d bytes after value", errs.ErrTrailingData, len(data)-n)
	}

	return v, nil
}

// From converts a native Go value (bool, numbers, strings, byte slices,
// slices, arrays, maps and pointers to them) into a Value.
func From(x any) (Value, error) {
	return variant.Of[variant.Owned](x)
}

// EncodeFrame encodes v into a frame compressed with ct.
//
// Example:
//
//	data, err := mpvalue.EncodeFrame(v, format.CompressionZstd)
func EncodeFrame[S variant.Storage](v variant.Variant[S], ct format.CompressionType) ([]byte, error) {
	return frame.Encode(v, frame.WithCompression(ct))
}

// DecodeFrame decodes a buffer holding exactly one frame into a Value.
func DecodeFrame(data []byte, opts ...variant.DecodeOption) (Value, error) {
	return frame.Decode[variant.Owned](data, frame.WithDecodeOptions(opts...))
}
