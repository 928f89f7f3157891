// Package variant provides Variant, a dynamically typed MessagePack value, in
// an owning flavor (Value) and a zero-copy borrowing flavor (Ref).
//
// # Cases
//
// A Variant holds exactly one of ten cases, reported by Kind: Nil, Bool, Int
// (negative integers), Uint (non-negative integers), Float, Str, Bin, Ext,
// Array and Map. Maps keep their entries in order and allow duplicate keys.
//
// # Flavors
//
// The storage parameter decides who owns str, bin and ext payloads:
//
//   - Value (Variant[Owned]) copies every payload it is given. It does not
//     depend on any input buffer.
//   - Ref (Variant[Borrowed]) keeps views of the payloads. A Ref decoded from a
//     buffer must not outlive the buffer, and the buffer must not change while
//     the Ref is in use.
//
// Own and View convert between flavors explicitly; the two flavors cannot be
// compared or mixed in one tree.
//
// # Building values
//
//	v := variant.NewMap(
//	    variant.KV(variant.NewStr("id"), variant.NewInt(42)),
//	    variant.KV(variant.NewStr("tags"), variant.NewArray(
//	        variant.NewStr("a"),
//	        variant.NewStr("b"),
//	    )),
//	)
//
// The generic constructors (Str, Int, Array, ...) build either flavor, e.g.
// variant.Str[variant.Borrowed](s) views s without copying. Of converts native
// Go values, including slices and maps, reflectively.
//
// # Encoding and decoding
//
//	data, err := variant.Marshal(v)
//
//	val, n, err := variant.Unmarshal[variant.Owned](data)    // owns its payloads
//	ref, n, err := variant.Unmarshal[variant.Borrowed](data) // views data
//
// Decode and Convert build values from an already parsed wire.Object; both
// share one dispatch. The decoder fails closed: nodes of an unknown category
// fail with errs.ErrUnsupportedCategory unless WithUnknownAsNil is given, and
// nesting deeper than WithMaxDepth (DefaultMaxDepth by default) fails with
// errs.ErrDepthExceeded.
//
// # Ordering
//
// Compare defines a total order over all values: first by Kind, then by
// payload. Equal and Hash are consistent with it, so values can be used as map
// keys through Lookup, Get and Index.
//
// # Errors
//
// Typed extractors (AsBool, AsStr, ...) fail with errs.ErrType when the active
// case is not the requested one. Shallow fails with errs.ErrType for every case
// that needs memory for its payload or children.
package variant
