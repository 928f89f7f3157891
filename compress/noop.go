package compress

// NoOpCompressor passes payloads through unchanged. Frames use it for
// format.CompressionNone and for payloads that do not compress.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself. A Ref decoded from the result borrows from
// the frame buffer.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressLimit returns data itself when it holds at most maxLen bytes.
func (c NoOpCompressor) DecompressLimit(data []byte, maxLen int) ([]byte, error) {
	if len(data) > maxLen {
		return nil, outputLimitError("none", maxLen)
	}

	return data, nil
}
