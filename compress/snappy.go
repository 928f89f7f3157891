package compress

import (
	"fmt"

	"github.com/golang/snappy"
)

// SnappyCompressor compresses with the Snappy block format.
//
// S2 can read Snappy blocks but not the other way round; use this codec when
// frames must be readable by plain Snappy implementations.
type SnappyCompressor struct{}

var _ Codec = (*SnappyCompressor)(nil)

// NewSnappyCompressor creates a new Snappy compressor.
func NewSnappyCompressor() SnappyCompressor {
	return SnappyCompressor{}
}

// Compress compresses the input data using Snappy block compression.
func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Encode(nil, data), nil
}

// Decompress decompresses a Snappy block.
func (c SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}

	return out, nil
}

// DecompressLimit checks the length recorded in the block header against
// maxLen before allocating the output.
func (c SnappyCompressor) DecompressLimit(data []byte, maxLen int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}
	if n > maxLen {
		return nil, outputLimitError("snappy", maxLen)
	}

	out, err := snappy.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}

	return out, nil
}
