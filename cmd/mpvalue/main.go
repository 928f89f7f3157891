// Command mpvalue prints MessagePack files as value trees and can rewrite
// them as checksummed, compressed frames.
//
// Usage:
//
//	mpvalue [flags] file...
//
// A file name of "-" reads standard input. Settings may come from a TOML
// file given with -config; flags set on the command line take precedence.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arloliu/mpvalue/frame"
	"github.com/arloliu/mpvalue/variant"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "mpvalue: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, files, outPath, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no input files")
	}

	log := newLogger(stderr, cfg.LogLevel)

	var (
		out  *os.File
		sink io.Writer
	)
	if outPath != "" {
		out, err = os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
		sink = out
	}

	var framedBytes int64
	for _, path := range files {
		n, err := processFile(cfg, path, stdin, stdout, sink, log)
		framedBytes += n
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if out != nil {
		log.Info().
			Str("file", outPath).
			Str("size", humanize.Bytes(uint64(framedBytes))). //nolint:gosec
			Stringer("compression", cfg.Compression).
			Msg("wrote frames")

		return out.Close()
	}

	return nil
}

// parseArgs applies the config file first and then every flag given
// explicitly on the command line.
func parseArgs(args []string, stderr io.Writer) (Config, []string, string, error) {
	fs := flag.NewFlagSet("mpvalue", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "TOML config file")
	outPath := fs.String("out", "", "write every decoded value as a frame to this file")
	maxDepth := fs.Int("max-depth", variant.DefaultMaxDepth, "maximum container nesting")
	unknownAsNil := fs.Bool("unknown-as-nil", false, "decode unrecognized nodes as nil instead of failing")
	framed := fs.Bool("framed", false, "input is a sequence of frames")
	compression := fs.String("compression", "none", "frame compression for -out: none, zstd, s2, lz4, snappy")
	canonical := fs.Bool("canonical", false, "sort map entries before printing")
	logLevel := fs.String("log-level", "info", "log level")
	useMmap := fs.Bool("mmap", false, "memory-map input files")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, "", err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			return Config{}, nil, "", err
		}
		cfg = loaded
	}

	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-depth":
			cfg.MaxDepth = *maxDepth
		case "unknown-as-nil":
			cfg.UnknownAsNil = *unknownAsNil
		case "framed":
			cfg.Framed = *framed
		case "canonical":
			cfg.Canonical = *canonical
		case "mmap":
			cfg.Mmap = *useMmap
		case "compression":
			ct, err := parseCompression(*compression)
			if err != nil {
				visitErr = errors.Join(visitErr, err)
				return
			}
			cfg.Compression = ct
		case "log-level":
			level, err := parseLogLevel(*logLevel)
			if err != nil {
				visitErr = errors.Join(visitErr, err)
				return
			}
			cfg.LogLevel = level
		}
	})
	if visitErr != nil {
		return Config{}, nil, "", visitErr
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, "", err
	}

	return cfg, fs.Args(), *outPath, nil
}

// processFile prints every value of one input and optionally re-frames it.
// It returns the number of frame bytes written to out.
func processFile(cfg Config, path string, stdin io.Reader, stdout io.Writer, out io.Writer, log zerolog.Logger) (int64, error) {
	start := time.Now()

	data, release, err := openInput(path, stdin, cfg.Mmap)
	if err != nil {
		return 0, err
	}
	defer func() { _ = release() }()

	values, decodeErr := decodeValues(cfg, data)

	var written int64
	for _, v := range values {
		if cfg.Canonical {
			v = v.Canonical()
		}
		if _, err := fmt.Fprintln(stdout, v.String()); err != nil {
			return written, err
		}

		if out != nil {
			n, err := frame.Write(out, v, frame.WithCompression(cfg.Compression))
			written += n
			if err != nil {
				return written, err
			}
		}
	}

	if decodeErr != nil {
		return written, decodeErr
	}

	log.Debug().
		Str("file", path).
		Str("size", humanize.Bytes(uint64(len(data)))).
		Int("values", len(values)).
		Bool("framed", cfg.Framed).
		Dur("elapsed", time.Since(start)).
		Msg("decoded input")

	return written, nil
}

// decodeValues decodes borrowed values so payloads point into data. On error
// the values decoded before the failure are returned too.
func decodeValues(cfg Config, data []byte) ([]variant.Ref, error) {
	if cfg.Framed {
		return frame.DecodeAll[variant.Borrowed](data, frame.WithDecodeOptions(cfg.DecodeOptions()...))
	}

	return variant.UnmarshalAll[variant.Borrowed](data, cfg.DecodeOptions()...)
}
