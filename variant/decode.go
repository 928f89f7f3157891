package variant

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/internal/options"
	"github.com/arloliu/mpvalue/wire"
)

// DefaultMaxDepth is the default limit on nested arrays and maps accepted by
// the decoder.
const DefaultMaxDepth = wire.DefaultMaxDepth

// DecodeConfig holds the decoder settings.
type DecodeConfig struct {
	// MaxDepth is the number of nested arrays and maps a value may contain.
	MaxDepth int
	// UnknownAsNil decodes nodes of an unrecognized category as Nil instead
	// of failing with errs.ErrUnsupportedCategory.
	UnknownAsNil bool
	// Parse holds the parser options used by Unmarshal and UnmarshalAll.
	Parse []wire.ParseOption
}

// DecodeOption configures Decode, Convert, Unmarshal and UnmarshalAll.
type DecodeOption = options.Option[*DecodeConfig]

func defaultDecodeConfig() DecodeConfig {
	return DecodeConfig{MaxDepth: DefaultMaxDepth}
}

// WithMaxDepth limits the number of nested arrays and maps. Deeper input fails
// with errs.ErrDepthExceeded.
func WithMaxDepth(depth int) DecodeOption {
	return options.New(func(c *DecodeConfig) error {
		if depth <= 0 {
			return fmt.Errorf("invalid max depth: %d", depth)
		}
		c.MaxDepth = depth

		return nil
	})
}

// WithUnknownAsNil makes nodes of an unrecognized category decode as Nil.
//
// By default such nodes fail with errs.ErrUnsupportedCategory.
func WithUnknownAsNil() DecodeOption {
	return options.NoError(func(c *DecodeConfig) { c.UnknownAsNil = true })
}

// WithParseOptions sets the parser options used when decoding from bytes.
func WithParseOptions(opts ...wire.ParseOption) DecodeOption {
	return options.NoError(func(c *DecodeConfig) {
		c.Parse = append(c.Parse, opts...)
	})
}

// Decode builds a value from a parsed node.
//
// For a Ref, str, bin and ext payloads view the node's bytes; for a Value they
// are copied. Either all of obj is converted or an error is returned.
func Decode[S Storage](obj wire.Object, opts ...DecodeOption) (Variant[S], error) {
	cfg, err := options.Build(defaultDecodeConfig, opts...)
	if err != nil {
		return Variant[S]{}, err
	}

	var v Variant[S]
	if err := build(&v, &obj, cfg, 0); err != nil {
		return Variant[S]{}, err
	}

	return v, nil
}

// Convert replaces the contents of v with the value decoded from obj.
//
// v is only written once the whole node converted successfully; on error it
// keeps its previous contents. Convert must not run concurrently with readers
// of v.
func (v *Variant[S]) Convert(obj wire.Object, opts ...DecodeOption) error {
	cfg, err := options.Build(defaultDecodeConfig, opts...)
	if err != nil {
		return err
	}

	var tmp Variant[S]
	if err := build(&tmp, &obj, cfg, 0); err != nil {
		return err
	}
	*v = tmp

	return nil
}

// build classifies obj and writes the matching case to dst. It is the single
// category-to-kind mapping behind both Decode and Convert.
func build[S Storage](dst *Variant[S], obj *wire.Object, cfg *DecodeConfig, depth int) error {
	kind, ok := kindOf(obj.Category)
	if !ok {
		if cfg.UnknownAsNil {
			*dst = Variant[S]{}
			return nil
		}

		return fmt.Errorf("%w: %s", errs.ErrUnsupportedCategory, obj.Category)
	}

	switch kind {
	case KindNil:
		*dst = Variant[S]{}
	case KindBool:
		*dst = Bool[S](obj.Bool)
	case KindInt:
		*dst = Int[S](obj.Int)
	case KindUint:
		*dst = Uint[S](obj.Uint)
	case KindFloat:
		*dst = Float[S](obj.Float)
	case KindStr:
		*dst = StrBytes[S](obj.Bytes)
	case KindBin:
		*dst = Bin[S](obj.Bytes)
	case KindExt:
		*dst = Ext[S](obj.ExtType, obj.Bytes)
	case KindArray:
		if depth+1 > cfg.MaxDepth {
			return fmt.Errorf("%w: more than %d nested containers", errs.ErrDepthExceeded, cfg.MaxDepth)
		}

		arr := make([]Variant[S], len(obj.Array))
		for i := range obj.Array {
			if err := build(&arr[i], &obj.Array[i], cfg, depth+1); err != nil {
				return err
			}
		}
		*dst = Variant[S]{kind: KindArray, arr: arr}
	case KindMap:
		if depth+1 > cfg.MaxDepth {
			return fmt.Errorf("%w: more than %d nested containers", errs.ErrDepthExceeded, cfg.MaxDepth)
		}

		kv := make([]Pair[S], len(obj.Map))
		for i := range obj.Map {
			if err := build(&kv[i].Key, &obj.Map[i].Key, cfg, depth+1); err != nil {
				return err
			}
			if err := build(&kv[i].Val, &obj.Map[i].Val, cfg, depth+1); err != nil {
				return err
			}
		}
		*dst = Variant[S]{kind: KindMap, kv: kv}
	}

	return nil
}

// Unmarshal parses and decodes the first value in data. It returns the value
// and the number of bytes consumed.
//
// A Ref returned by Unmarshal borrows its payloads from data.
func Unmarshal[S Storage](data []byte, opts ...DecodeOption) (Variant[S], int, error) {
	cfg, err := options.Build(defaultDecodeConfig, opts...)
	if err != nil {
		return Variant[S]{}, 0, err
	}

	zone := wire.NewZone()
	defer zone.Release()

	obj, n, err := wire.Unpack(data, parseOptions(cfg, zone)...)
	if err != nil {
		return Variant[S]{}, n, err
	}

	var v Variant[S]
	if err := build(&v, &obj, cfg, 0); err != nil {
		return Variant[S]{}, n, err
	}

	return v, n, nil
}

// UnmarshalAll decodes every consecutive value in data.
//
// Values are decoded independently. When one is malformed, UnmarshalAll
// returns the values decoded before it together with an error that carries
// the offset of the failing value.
func UnmarshalAll[S Storage](data []byte, opts ...DecodeOption) ([]Variant[S], error) {
	cfg, err := options.Build(defaultDecodeConfig, opts...)
	if err != nil {
		return nil, err
	}

	zone := wire.NewZone()
	defer zone.Release()

	u, err := wire.NewUnpacker(data, parseOptions(cfg, zone)...)
	if err != nil {
		return nil, err
	}

	var out []Variant[S]
	for {
		offset := u.Offset()
		obj, err := u.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}

			return out, err
		}

		var v Variant[S]
		if err := build(&v, &obj, cfg, 0); err != nil {
			return out, fmt.Errorf("value at offset %d: %w", offset, err)
		}
		out = append(out, v)
	}
}

// parseOptions returns the parser options for cfg. The parse tree is
// transient, so its children come from zone; payload bytes still point into
// the input.
func parseOptions(cfg *DecodeConfig, zone *wire.Zone) []wire.ParseOption {
	opts := make([]wire.ParseOption, 0, len(cfg.Parse)+2)
	opts = append(opts, wire.WithMaxDepth(cfg.MaxDepth))
	opts = append(opts, cfg.Parse...)

	return append(opts, wire.WithZone(zone))
}
