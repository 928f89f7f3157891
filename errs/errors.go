// Package errs defines the sentinel errors returned by mpvalue packages.
//
// Call sites wrap these with additional context using fmt.Errorf("%w: ...");
// use errors.Is to test for a specific kind.
package errs

import "errors"

var (
	// ErrType reports a mismatch between the requested and the actual value shape:
	// extracting the wrong case, a fixed-length array of the wrong length, or a
	// shallow projection of a case that needs backing storage.
	ErrType = errors.New("type mismatch")

	// ErrUnsupportedCategory reports a node whose category is none of the ten
	// recognized value categories.
	ErrUnsupportedCategory = errors.New("unsupported value category")

	// ErrDepthExceeded reports nesting deeper than the configured maximum.
	ErrDepthExceeded = errors.New("nesting depth exceeded")

	// ErrLimitExceeded reports a container or payload length above the configured limit.
	ErrLimitExceeded = errors.New("length limit exceeded")

	// ErrShortBuffer reports input that ends before the value it announces.
	ErrShortBuffer = errors.New("insufficient data")

	// ErrInvalidFormat reports a reserved or otherwise undecodable format byte.
	ErrInvalidFormat = errors.New("invalid format byte")

	// ErrTooLarge reports a payload or container too large for the wire format.
	ErrTooLarge = errors.New("value too large to encode")

	// ErrUnsupportedNative reports a Go value with no value representation.
	ErrUnsupportedNative = errors.New("unsupported native type")

	ErrInvalidFrameHeader  = errors.New("invalid frame header")
	ErrInvalidFrameVersion = errors.New("unsupported frame version")
	ErrChecksumMismatch    = errors.New("frame checksum mismatch")
	ErrTrailingData        = errors.New("trailing data after value")
)
