// Package compress provides block codecs for encoded MessagePack payloads.
//
// The frame package compresses a value's encoding with one of these codecs
// before writing it; the codec is selected by format.CompressionType and
// recorded in the frame header so readers can pick the matching decoder.
//
// # Algorithms
//
//   - None: the payload is stored as is, and decoded Refs borrow from it
//   - Zstd: best ratio, moderate speed (klauspost/compress, or gozstd when
//     built with cgo and the gozstd tag)
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//   - Snappy: readable by any Snappy implementation
//
// MessagePack maps with repeated key strings compress well under every
// algorithm; payloads dominated by bin data usually do not, and Measure can
// be used to check before committing to a codec:
//
//	stats, err := compress.Measure(format.CompressionZstd, payload)
//	fmt.Printf("%.1f%% saved\n", stats.SpaceSavings())
//
// # Bounded decompression
//
// Readers of untrusted input know how large the output should be. Frames
// record it, and DecompressLimit refuses to produce more:
//
//	raw, err := codec.DecompressLimit(payload, int(header.RawLen))
//	if errors.Is(err, errs.ErrLimitExceeded) {
//		// the payload inflates past its declared size
//	}
//
// # Thread Safety
//
// All codecs are safe for concurrent use. GetCodec returns shared instances.
package compress
