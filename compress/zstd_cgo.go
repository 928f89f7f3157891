//go:build cgo && gozstd

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/valyala/gozstd"
)

// zstdLevel matches the default level of the pure Go encoder.
const zstdLevel = 3

// Compress compresses the input data using Zstandard compression.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses Zstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}

// DecompressLimit streams the frame and stops after maxLen+1 output bytes.
func (c ZstdCompressor) DecompressLimit(data []byte, maxLen int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	return readAtMost(zr, maxLen)
}

// readAtMost drains r into a buffer that grows with the data actually read,
// failing once more than maxLen bytes arrive.
func readAtMost(r io.Reader, maxLen int) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, int64(maxLen)+1)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if n > int64(maxLen) {
		return nil, outputLimitError("zstd", maxLen)
	}

	return buf.Bytes(), nil
}
