package compress

import (
	"bytes"
	"fmt"
	"runtime"
	"testing"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/stretchr/testify/require"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp":   NewNoOpCompressor(),
		"LZ4":    NewLZ4Compressor(),
		"S2":     NewS2Compressor(),
		"Zstd":   NewZstdCompressor(),
		"Snappy": NewSnappyCompressor(),
	}
}

// msgpackRecords builds n copies of {"id": i, "name": "sensor", "ok": true}.
func msgpackRecords(n int) []byte {
	buf := []byte{0xdc, byte(n >> 8), byte(n)}
	for i := range n {
		buf = append(buf, 0x83)
		buf = append(buf, 0xa2, 'i', 'd', 0xcd, byte(i>>8), byte(i))
		buf = append(buf, 0xa4, 'n', 'a', 'm', 'e', 0xa6, 's', 'e', 'n', 's', 'o', 'r')
		buf = append(buf, 0xa2, 'o', 'k', 0xc3)
	}

	return buf
}

func pseudoRandom(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte((i*31 + i*i*7 + i*i*i*3) % 256)
	}

	return data
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, decompressed)

			compressed, err = codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"nil value", []byte{0xc0}},
		{"fixstr", []byte{0xa3, 'a', 'b', 'c'}},
		{"records", msgpackRecords(300)},
		{"large records", msgpackRecords(4000)},
		{"bin of zeros", append([]byte{0xc6, 0x00, 0x10, 0x00, 0x00}, make([]byte, 1<<20)...)},
		{"incompressible", pseudoRandom(4096)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotEmpty(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.True(t, bytes.Equal(tc.data, decompressed), "decompressed payload must match")
				})
			}
		})
	}
}

// allocatedDuring reports the bytes allocated on the heap while fn runs.
func allocatedDuring(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)

	return after.TotalAlloc - before.TotalAlloc
}

func TestAllCodecs_DecompressLimit(t *testing.T) {
	data := msgpackRecords(2000)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			out, err := codec.DecompressLimit(compressed, len(data))
			require.NoError(t, err)
			require.Equal(t, data, out)

			out, err = codec.DecompressLimit(compressed, len(data)+100)
			require.NoError(t, err)
			require.Equal(t, data, out)

			_, err = codec.DecompressLimit(compressed, len(data)-1)
			require.ErrorIs(t, err, errs.ErrLimitExceeded)

			_, err = codec.DecompressLimit(compressed, 0)
			require.ErrorIs(t, err, errs.ErrLimitExceeded)

			out, err = codec.DecompressLimit(nil, 0)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestAllCodecs_DecompressLimitBoundsAllocation(t *testing.T) {
	const expanded = 32 << 20
	zeros := make([]byte, expanded)

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}

		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(zeros)
			require.NoError(t, err)
			require.Less(t, len(compressed), expanded/16)

			// warm up pooled decoders so the measurement only sees the call
			_, _ = codec.DecompressLimit(compressed, 1024)

			var limitErr error
			allocated := allocatedDuring(func() {
				_, limitErr = codec.DecompressLimit(compressed, 1024)
			})
			require.ErrorIs(t, limitErr, errs.ErrLimitExceeded)
			require.Less(t, allocated, uint64(4<<20), "allocated %d bytes for a 1 KiB limit", allocated)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{"random_bytes", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"text_as_compressed", []byte("this is not compressed data")},
		{"corrupted_header", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}

		t.Run(codecName, func(t *testing.T) {
			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	payload := msgpackRecords(64)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			done := make(chan error, numGoroutines)
			for range numGoroutines {
				go func() {
					compressed, err := codec.Compress(payload)
					if err != nil {
						done <- err
						return
					}
					restored, err := codec.Decompress(compressed)
					if err != nil {
						done <- err
						return
					}
					if !bytes.Equal(payload, restored) {
						done <- fmt.Errorf("%s: payload mismatch", codecName)
						return
					}
					done <- nil
				}()
			}

			for range numGoroutines {
				require.NoError(t, <-done)
			}
		})
	}
}

func TestNoOpCompressor_SharesInput(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte{0x91, 0x01}

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &compressed[0])

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Same(t, &data[0], &decompressed[0])
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionSnappy,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			require.NotNil(t, codec)

			created, err := CreateCodec(ct, "payload")
			require.NoError(t, err)
			require.IsType(t, codec, created)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := GetCodec(format.CompressionType(0))
		require.Error(t, err)

		_, err = CreateCodec(format.CompressionType(0x7f), "payload")
		require.ErrorContains(t, err, "invalid payload compression")
	})
}

func TestCompressionStats_Calculations(t *testing.T) {
	tests := []struct {
		name          string
		stats         CompressionStats
		expectedRatio float64
		expectedSave  float64
	}{
		{"half", CompressionStats{OriginalSize: 1000, CompressedSize: 500}, 0.5, 50.0},
		{"none", CompressionStats{OriginalSize: 1000, CompressedSize: 1000}, 1.0, 0.0},
		{"expansion", CompressionStats{OriginalSize: 100, CompressedSize: 120}, 1.2, -20.0},
		{"empty", CompressionStats{}, 0.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expectedRatio, tt.stats.CompressionRatio(), 1e-9)
			require.InDelta(t, tt.expectedSave, tt.stats.SpaceSavings(), 1e-9)
		})
	}
}

func TestMeasure(t *testing.T) {
	payload := msgpackRecords(500)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4, format.CompressionSnappy} {
		t.Run(ct.String(), func(t *testing.T) {
			stats, err := Measure(ct, payload)
			require.NoError(t, err)
			require.Equal(t, ct, stats.Algorithm)
			require.Equal(t, int64(len(payload)), stats.OriginalSize)
			require.Less(t, stats.CompressedSize, stats.OriginalSize)
			require.Positive(t, stats.SpaceSavings())
		})
	}

	t.Run("none", func(t *testing.T) {
		stats, err := Measure(format.CompressionNone, payload)
		require.NoError(t, err)
		require.InDelta(t, 1.0, stats.CompressionRatio(), 1e-9)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Measure(format.CompressionType(0), payload)
		require.Error(t, err)
	})
}
