// Package wire implements the MessagePack primitives the value layer builds on:
// a Packer that appends the encoding of each leaf case and of array/map
// headers, a parser that turns bytes into Object nodes, and a Zone arena that
// backs the parsed trees.
//
// # Encoding
//
//	p := wire.NewPacker()
//	defer p.Release()
//
//	_ = p.PackMapHeader(1)
//	_ = p.PackString("id")
//	p.PackUint64(42)
//	out := bytes.Clone(p.Bytes())
//
// # Parsing
//
// Unpack parses a single value and reports how many bytes it consumed:
//
//	obj, n, err := wire.Unpack(data, wire.WithMaxDepth(64))
//
// An Unpacker walks a buffer holding several consecutive values:
//
//	u, _ := wire.NewUnpacker(data)
//	for obj, err := range u.All() {
//	    ...
//	}
//
// Parsed nodes never copy payloads: Str, Bin and Ext bytes are sub-slices of
// the input. Container children come from the heap, or from a Zone when
// WithZone is given; such nodes stay valid until Zone.Release.
//
// # Limits
//
// The parser enforces Limits (see DefaultLimits): container and payload
// lengths above a limit fail with errs.ErrLimitExceeded, nesting beyond
// Limits.Depth fails with errs.ErrDepthExceeded, and announced lengths that
// the remaining input cannot hold fail with errs.ErrShortBuffer before any
// memory is allocated for them.
package wire
