package compress

// ZstdCompressor provides Zstandard compression of encoded values.
//
// Zstd gives the best ratio of the built-in codecs on MessagePack payloads,
// which repeat map keys and string values heavily. It suits values that are
// stored or sent over slow links and decoded rarely.
//
// The implementation is chosen at build time: the pure Go
// github.com/klauspost/compress/zstd by default, or the cgo binding
// github.com/valyala/gozstd when built with cgo and the gozstd tag. Both
// produce standard zstd frames and can read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
