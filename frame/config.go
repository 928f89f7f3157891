package frame

import (
	"fmt"

	"github.com/arloliu/mpvalue/format"
	"github.com/arloliu/mpvalue/internal/options"
	"github.com/arloliu/mpvalue/variant"
)

// DefaultMaxRawSize bounds the decompressed size a frame may declare.
const DefaultMaxRawSize = 64 << 20

// Config holds the settings shared by frame encoding and decoding.
type Config struct {
	// Compression is the codec applied to the payload on encode.
	Compression format.CompressionType
	// MaxRawSize rejects frames declaring a larger raw length before any
	// decompression takes place.
	MaxRawSize uint32
	// Decode is passed to variant decoding of the payload.
	Decode []variant.DecodeOption
}

// Option configures a frame Config.
type Option = options.Option[*Config]

func defaultConfig() Config {
	return Config{
		Compression: format.CompressionNone,
		MaxRawSize:  DefaultMaxRawSize,
	}
}

// WithCompression selects the payload codec used by Encode.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if !ct.Valid() {
			return fmt.Errorf("invalid frame compression: %s", ct)
		}
		c.Compression = ct

		return nil
	})
}

// WithMaxRawSize sets the largest raw length a decoded frame may declare.
func WithMaxRawSize(n uint32) Option {
	return options.New(func(c *Config) error {
		if n == 0 {
			return fmt.Errorf("max raw size must be positive")
		}
		c.MaxRawSize = n

		return nil
	})
}

// WithDecodeOptions appends options used when decoding the payload value.
func WithDecodeOptions(opts ...variant.DecodeOption) Option {
	return options.NoError(func(c *Config) {
		c.Decode = append(c.Decode, opts...)
	})
}
