package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arloliu/mpvalue/format"
	"github.com/arloliu/mpvalue/variant"
	"github.com/arloliu/mpvalue/wire"
	"github.com/rs/zerolog"
)

// Config controls how input files are decoded, printed and re-framed.
// Zero length limits keep the parser defaults.
type Config struct {
	MaxDepth     int
	UnknownAsNil bool
	MaxStrLen    int
	MaxBinLen    int
	MaxExtLen    int
	MaxArrayLen  int
	MaxMapLen    int
	Framed       bool
	Compression  format.CompressionType
	Canonical    bool
	LogLevel     zerolog.Level
	Mmap         bool
}

// DefaultConfig returns the settings used when no config file or flag
// overrides them: the default nesting depth, no extra length limits, plain
// MessagePack output at info level.
func DefaultConfig() Config {
	return Config{
		MaxDepth:    variant.DefaultMaxDepth,
		Compression: format.CompressionNone,
		LogLevel:    zerolog.InfoLevel,
	}
}

type fileConfig struct {
	MaxDepth     int    `toml:"max_depth"`
	UnknownAsNil bool   `toml:"unknown_as_nil"`
	MaxStrLen    int    `toml:"max_str_len"`
	MaxBinLen    int    `toml:"max_bin_len"`
	MaxExtLen    int    `toml:"max_ext_len"`
	MaxArrayLen  int    `toml:"max_array_len"`
	MaxMapLen    int    `toml:"max_map_len"`
	Framed       bool   `toml:"framed"`
	Compression  string `toml:"compression"`
	Canonical    bool   `toml:"canonical"`
	LogLevel     string `toml:"log_level"`
	Mmap         bool   `toml:"mmap"`
}

func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load mpvalue config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("unknown_as_nil") {
		cfg.UnknownAsNil = raw.UnknownAsNil
	}
	if meta.IsDefined("max_str_len") {
		cfg.MaxStrLen = raw.MaxStrLen
	}
	if meta.IsDefined("max_bin_len") {
		cfg.MaxBinLen = raw.MaxBinLen
	}
	if meta.IsDefined("max_ext_len") {
		cfg.MaxExtLen = raw.MaxExtLen
	}
	if meta.IsDefined("max_array_len") {
		cfg.MaxArrayLen = raw.MaxArrayLen
	}
	if meta.IsDefined("max_map_len") {
		cfg.MaxMapLen = raw.MaxMapLen
	}
	if meta.IsDefined("framed") {
		cfg.Framed = raw.Framed
	}
	if meta.IsDefined("canonical") {
		cfg.Canonical = raw.Canonical
	}
	if meta.IsDefined("mmap") {
		cfg.Mmap = raw.Mmap
	}

	if meta.IsDefined("compression") {
		ct, err := parseCompression(raw.Compression)
		if err != nil {
			return Config{}, err
		}
		cfg.Compression = ct
	}

	if meta.IsDefined("log_level") {
		level, err := parseLogLevel(raw.LogLevel)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the decoder would refuse.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}

	for name, n := range map[string]int{
		"max_str_len":   c.MaxStrLen,
		"max_bin_len":   c.MaxBinLen,
		"max_ext_len":   c.MaxExtLen,
		"max_array_len": c.MaxArrayLen,
		"max_map_len":   c.MaxMapLen,
	} {
		if n < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, n)
		}
	}

	return nil
}

// DecodeOptions translates the config into variant decode options.
func (c Config) DecodeOptions() []variant.DecodeOption {
	opts := []variant.DecodeOption{variant.WithMaxDepth(c.MaxDepth)}
	if c.UnknownAsNil {
		opts = append(opts, variant.WithUnknownAsNil())
	}

	var limits []wire.ParseOption
	if c.MaxStrLen > 0 {
		limits = append(limits, wire.WithMaxStrLen(c.MaxStrLen))
	}
	if c.MaxBinLen > 0 {
		limits = append(limits, wire.WithMaxBinLen(c.MaxBinLen))
	}
	if c.MaxExtLen > 0 {
		limits = append(limits, wire.WithMaxExtLen(c.MaxExtLen))
	}
	if c.MaxArrayLen > 0 {
		limits = append(limits, wire.WithMaxArrayLen(c.MaxArrayLen))
	}
	if c.MaxMapLen > 0 {
		limits = append(limits, wire.WithMaxMapLen(c.MaxMapLen))
	}
	if len(limits) > 0 {
		opts = append(opts, variant.WithParseOptions(limits...))
	}

	return opts
}

func parseCompression(name string) (format.CompressionType, error) {
	ct, ok := format.ParseCompressionType(strings.TrimSpace(name))
	if !ok {
		return 0, fmt.Errorf("unknown compression %q", name)
	}

	return ct, nil
}

func parseLogLevel(name string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log_level: %w", err)
	}

	return level, nil
}
