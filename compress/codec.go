package compress

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
)

// Compressor compresses encoded MessagePack payloads.
type Compressor interface {
	// Compress compresses data and returns the result.
	//
	// Memory management:
	//   - The returned slice is owned by the caller, except for the no-op
	//     codec which returns data itself
	//   - data is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads produced by the matching Compressor.
//
// Thread Safety: implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original payload. Corrupted input, or input
	// produced by another algorithm, returns an error.
	Decompress(data []byte) ([]byte, error)

	// DecompressLimit is Decompress with an output bound. Input that expands
	// past maxLen bytes fails with errs.ErrLimitExceeded, and no buffer
	// larger than maxLen is allocated for the output.
	DecompressLimit(data []byte, maxLen int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression run.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data
	DecompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression; 0.0 is returned for
// empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses and decompresses data with the codec of compressionType
// and reports sizes and timings. A round trip that does not restore data is
// an error.
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return CompressionStats{}, err
	}

	stats := CompressionStats{Algorithm: compressionType, OriginalSize: int64(len(data))}

	start := time.Now()
	compressed, err := codec.Compress(data)
	if err != nil {
		return stats, err
	}
	stats.CompressionTimeNs = time.Since(start).Nanoseconds()
	stats.CompressedSize = int64(len(compressed))

	start = time.Now()
	restored, err := codec.Decompress(compressed)
	if err != nil {
		return stats, err
	}
	stats.DecompressionTimeNs = time.Since(start).Nanoseconds()

	if !bytes.Equal(restored, data) {
		return stats, fmt.Errorf("%s round trip did not restore the input", compressionType)
	}

	return stats, nil
}

func outputLimitError(algorithm string, maxLen int) error {
	return fmt.Errorf("%w: %s output exceeds %d bytes", errs.ErrLimitExceeded, algorithm, maxLen)
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Snappy)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionSnappy:
		return NewSnappyCompressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:   NewNoOpCompressor(),
	format.CompressionZstd:   NewZstdCompressor(),
	format.CompressionS2:     NewS2Compressor(),
	format.CompressionLZ4:    NewLZ4Compressor(),
	format.CompressionSnappy: NewSnappyCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
