package wire

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/arloliu/mpvalue/errs"
	"github.com/arloliu/mpvalue/format"
	"github.com/arloliu/mpvalue/internal/options"
	"github.com/tinylib/msgp/msgp"
)

// DefaultMaxDepth is the default limit on nested arrays and maps.
const DefaultMaxDepth = 512

// Limits bounds what the parser accepts. Lengths are counts of elements,
// entries or payload bytes; Depth is the number of nested containers.
type Limits struct {
	Array int
	Map   int
	Str   int
	Bin   int
	Ext   int
	Depth int
}

// DefaultLimits accepts every length the wire format can express and nests
// up to DefaultMaxDepth containers.
func DefaultLimits() Limits {
	return Limits{
		Array: math.MaxUint32,
		Map:   math.MaxUint32,
		Str:   math.MaxUint32,
		Bin:   math.MaxUint32,
		Ext:   math.MaxUint32,
		Depth: DefaultMaxDepth,
	}
}

// ParseConfig configures the parser.
type ParseConfig struct {
	Limits Limits
	Zone   *Zone
}

// ParseOption configures Unpack, UnpackAll and Unpacker.
type ParseOption = options.Option[*ParseConfig]

func defaultParseConfig() ParseConfig {
	return ParseConfig{Limits: DefaultLimits()}
}

// WithLimits replaces every limit at once.
func WithLimits(l Limits) ParseOption {
	return options.New(func(c *ParseConfig) error {
		if l.Depth <= 0 {
			return fmt.Errorf("invalid depth limit: %d", l.Depth)
		}
		c.Limits = l

		return nil
	})
}

// WithMaxDepth limits the number of nested containers.
func WithMaxDepth(depth int) ParseOption {
	return options.New(func(c *ParseConfig) error {
		if depth <= 0 {
			return fmt.Errorf("invalid depth limit: %d", depth)
		}
		c.Limits.Depth = depth

		return nil
	})
}

// WithMaxArrayLen limits the element count of arrays.
func WithMaxArrayLen(n int) ParseOption {
	return options.NoError(func(c *ParseConfig) { c.Limits.Array = n })
}

// WithMaxMapLen limits the entry count of maps.
func WithMaxMapLen(n int) ParseOption {
	return options.NoError(func(c *ParseConfig) { c.Limits.Map = n })
}

// WithMaxStrLen limits the byte length of strings.
func WithMaxStrLen(n int) ParseOption {
	return options.NoError(func(c *ParseConfig) { c.Limits.Str = n })
}

// WithMaxBinLen limits the byte length of binary payloads.
func WithMaxBinLen(n int) ParseOption {
	return options.NoError(func(c *ParseConfig) { c.Limits.Bin = n })
}

// WithMaxExtLen limits the byte length of extension payloads.
func WithMaxExtLen(n int) ParseOption {
	return options.NoError(func(c *ParseConfig) { c.Limits.Ext = n })
}

// WithZone allocates container children from z instead of the heap.
func WithZone(z *Zone) ParseOption {
	return options.NoError(func(c *ParseConfig) { c.Zone = z })
}

// Unpack parses the first value in data.
//
// It returns the node and the number of bytes consumed. Str, Bin and Ext
// payloads of the node point into data; data must not be modified while the
// node or anything decoded from it without copying is in use.
func Unpack(data []byte, opts ...ParseOption) (Object, int, error) {
	cfg, err := options.Build(defaultParseConfig, opts...)
	if err != nil {
		return Object{}, 0, err
	}

	p := parser{data: data, cfg: cfg}
	var obj Object
	if err := p.parseInto(&obj, 0); err != nil {
		return Object{}, p.pos, err
	}

	return obj, p.pos, nil
}

// UnpackAll parses every consecutive value in data.
//
// On failure it returns the values parsed before the malformed one together
// with the error, which carries the offset of the failing value.
func UnpackAll(data []byte, opts ...ParseOption) ([]Object, error) {
	u, err := NewUnpacker(data, opts...)
	if err != nil {
		return nil, err
	}

	var objs []Object
	for obj, err := range u.All() {
		if err != nil {
			return objs, err
		}
		objs = append(objs, obj)
	}

	return objs, nil
}

// Unpacker parses consecutive values from a buffer.
//
// Note: The Unpacker is NOT thread-safe.
type Unpacker struct {
	data []byte
	pos  int
	cfg  *ParseConfig
}

// NewUnpacker creates an Unpacker over data.
func NewUnpacker(data []byte, opts ...ParseOption) (*Unpacker, error) {
	cfg, err := options.Build(defaultParseConfig, opts...)
	if err != nil {
		return nil, err
	}

	return &Unpacker{data: data, cfg: cfg}, nil
}

// Offset returns the position of the next value in the buffer.
func (u *Unpacker) Offset() int {
	return u.pos
}

// Remaining returns the number of unparsed bytes.
func (u *Unpacker) Remaining() int {
	return len(u.data) - u.pos
}

// Next parses the next value. It returns io.EOF once the buffer is exhausted.
// After any other error the Unpacker stays at the failing offset.
func (u *Unpacker) Next() (Object, error) {
	if u.pos >= len(u.data) {
		return Object{}, io.EOF
	}

	p := parser{data: u.data[u.pos:], cfg: u.cfg}
	var obj Object
	if err := p.parseInto(&obj, 0); err != nil {
		return Object{}, fmt.Errorf("value at offset %d: %w", u.pos, err)
	}
	u.pos += p.pos

	return obj, nil
}

// All iterates over the remaining values. Iteration stops after the first error.
func (u *Unpacker) All() iter.Seq2[Object, error] {
	return func(yield func(Object, error) bool) {
		for {
			obj, err := u.Next()
			if err == io.EOF {
				return
			}
			if !yield(obj, err) || err != nil {
				return
			}
		}
	}
}

// parser walks data with the msgp byte readers. Every reader returns the
// unread tail, from which pos is recomputed.
type parser struct {
	data []byte
	pos  int
	cfg  *ParseConfig
}

func (p *parser) rest() []byte {
	return p.data[p.pos:]
}

func (p *parser) advance(tail []byte) {
	p.pos = len(p.data) - len(tail)
}

// readErr maps a msgp read failure at off to the errs sentinels.
func readErr(err error, off int) error {
	if errors.Is(err, msgp.ErrShortBytes) {
		return fmt.Errorf("%w: truncated value at offset %d", errs.ErrShortBuffer, off)
	}

	return fmt.Errorf("%w: %w at offset %d", errs.ErrInvalidFormat, err, off)
}

func checkLen(n uint64, limit int, what string) (int, error) {
	if n > uint64(limit) { //nolint:gosec
		return 0, fmt.Errorf("%w: %s length %d exceeds %d", errs.ErrLimitExceeded, what, n, limit)
	}

	return int(n), nil //nolint:gosec
}

// view caps b so appends to a borrowed payload never reach the next value.
func view(b []byte) []byte {
	return b[:len(b):len(b)]
}

func (p *parser) parseInto(o *Object, depth int) error {
	b := p.rest()
	if len(b) == 0 {
		return fmt.Errorf("%w: need 1 byte at offset %d, have 0", errs.ErrShortBuffer, p.pos)
	}
	head := b[0]

	cat, ok := format.Classify(head)
	if !ok {
		return fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrInvalidFormat, head, p.pos)
	}

	switch cat {
	case format.CategoryNil:
		return p.parseNil(o)
	case format.CategoryBool:
		return p.parseBool(o)
	case format.CategoryPosInt:
		return p.parseUint(o)
	case format.CategoryNegInt:
		return p.parseInt(o)
	case format.CategoryFloat:
		return p.parseFloat(o, head)
	case format.CategoryStr:
		return p.parseStr(o)
	case format.CategoryBin:
		return p.parseBin(o)
	case format.CategoryExt:
		return p.parseExt(o, head)
	case format.CategoryArray:
		return p.parseArray(o, depth)
	case format.CategoryMap:
		return p.parseMap(o, depth)
	default:
		return fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrInvalidFormat, head, p.pos)
	}
}

func (p *parser) parseNil(o *Object) error {
	tail, err := msgp.ReadNilBytes(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	p.advance(tail)
	*o = NilObject()

	return nil
}

func (p *parser) parseBool(o *Object) error {
	v, tail, err := msgp.ReadBoolBytes(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	p.advance(tail)
	*o = BoolObject(v)

	return nil
}

func (p *parser) parseUint(o *Object) error {
	u, tail, err := msgp.ReadUint64Bytes(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	p.advance(tail)
	*o = UintObject(u)

	return nil
}

func (p *parser) parseInt(o *Object) error {
	i, tail, err := msgp.ReadInt64Bytes(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	p.advance(tail)
	// signed formats may carry non-negative values; IntObject files those
	// under the positive integers
	*o = IntObject(i)

	return nil
}

func (p *parser) parseFloat(o *Object, head byte) error {
	if head == format.Float32 {
		f, tail, err := msgp.ReadFloat32Bytes(p.rest())
		if err != nil {
			return readErr(err, p.pos)
		}
		p.advance(tail)
		*o = FloatObject(float64(f))

		return nil
	}

	f, tail, err := msgp.ReadFloat64Bytes(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	p.advance(tail)
	*o = FloatObject(f)

	return nil
}

func (p *parser) parseStr(o *Object) error {
	v, tail, err := msgp.ReadStringZC(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	if _, err := checkLen(uint64(len(v)), p.cfg.Limits.Str, "str"); err != nil {
		return err
	}
	p.advance(tail)
	*o = StrObject(view(v))

	return nil
}

func (p *parser) parseBin(o *Object) error {
	v, tail, err := msgp.ReadBytesZC(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	if _, err := checkLen(uint64(len(v)), p.cfg.Limits.Bin, "bin"); err != nil {
		return err
	}
	p.advance(tail)
	*o = BinObject(view(v))

	return nil
}

// extHeaderLen is the number of bytes before the payload of an ext value,
// type byte included.
func extHeaderLen(head byte) int {
	switch head {
	case format.Ext8:
		return 3
	case format.Ext16:
		return 4
	case format.Ext32:
		return 6
	default:
		return 2
	}
}

func (p *parser) parseExt(o *Object, head byte) error {
	// Skip validates the declared length against the input; the type byte
	// and payload are then sliced out of the skipped span in place.
	b := p.rest()
	tail, err := msgp.Skip(b)
	if err != nil {
		return readErr(err, p.pos)
	}
	raw := b[:len(b)-len(tail)]

	hdr := extHeaderLen(head)
	if len(raw) < hdr {
		return fmt.Errorf("%w: ext header at offset %d", errs.ErrShortBuffer, p.pos)
	}
	if _, err := checkLen(uint64(len(raw)-hdr), p.cfg.Limits.Ext, "ext"); err != nil {
		return err
	}
	p.advance(tail)
	*o = ExtObject(int8(raw[hdr-1]), view(raw[hdr:])) //nolint:gosec

	return nil
}

func (p *parser) parseArray(o *Object, depth int) error {
	if depth+1 > p.cfg.Limits.Depth {
		return fmt.Errorf("%w: more than %d nested containers", errs.ErrDepthExceeded, p.cfg.Limits.Depth)
	}

	sz, tail, err := msgp.ReadArrayHeaderBytes(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	n, err := checkLen(uint64(sz), p.cfg.Limits.Array, "array")
	if err != nil {
		return err
	}
	// every element needs at least one byte; reject counts the input cannot hold
	if n > len(tail) {
		return fmt.Errorf("%w: array of %d elements with %d bytes left",
			errs.ErrShortBuffer, n, len(tail))
	}
	p.advance(tail)

	elems := p.cfg.Zone.Objects(n)
	for i := range elems {
		if err := p.parseInto(&elems[i], depth+1); err != nil {
			return err
		}
	}
	*o = ArrayObject(elems)

	return nil
}

func (p *parser) parseMap(o *Object, depth int) error {
	if depth+1 > p.cfg.Limits.Depth {
		return fmt.Errorf("%w: more than %d nested containers", errs.ErrDepthExceeded, p.cfg.Limits.Depth)
	}

	sz, tail, err := msgp.ReadMapHeaderBytes(p.rest())
	if err != nil {
		return readErr(err, p.pos)
	}
	n, err := checkLen(uint64(sz), p.cfg.Limits.Map, "map")
	if err != nil {
		return err
	}
	// every entry needs at least two bytes
	if n > len(tail)/2 {
		return fmt.Errorf("%w: map of %d entries with %d bytes left",
			errs.ErrShortBuffer, n, len(tail))
	}
	p.advance(tail)

	entries := p.cfg.Zone.Pairs(n)
	for i := range entries {
		if err := p.parseInto(&entries[i].Key, depth+1); err != nil {
			return err
		}
		if err := p.parseInto(&entries[i].Val, depth+1); err != nil {
			return err
		}
	}
	*o = MapObject(entries)

	return nil
}
