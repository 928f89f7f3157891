package variant

import (
	"math"
	"slices"
)

// Variant is a dynamically typed MessagePack value.
//
// Exactly one case is active, reported by Kind. Scalars are held inline,
// Str/Bin/Ext payloads according to the storage S, and Array/Map children in
// slices of the same flavor. The zero Variant is Nil.
//
// A Variant is immutable once constructed: no method modifies it except
// Convert, which must not run concurrently with readers of the same value.
// Slices returned by the As* extractors share memory with the value and must
// not be modified.
//
// Comparing or mixing a Value with a Ref is a compile-time error; use Own or
// View to change flavor explicitly.
type Variant[S Storage] struct {
	kind Kind
	ext  int8
	bits uint64 // bool, integer or float payload
	data []byte // str, bin or ext payload
	arr  []Variant[S]
	kv   []Pair[S]
}

// Value is a Variant that owns all of its payloads and can outlive the
// buffer it was decoded from.
type Value = Variant[Owned]

// Ref is a Variant whose payloads borrow from the buffer it was decoded from.
type Ref = Variant[Borrowed]

// Pair is one key/value entry of a map value.
type Pair[S Storage] struct {
	Key Variant[S]
	Val Variant[S]
}

// Extension is the payload of an extension value.
type Extension struct {
	Type int8
	Data []byte
}

// Integer is the set of native integer types accepted by Int.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floating is the set of native float types accepted by Float.
type Floating interface {
	~float32 | ~float64
}

// Nil returns the nil value.
func Nil[S Storage]() Variant[S] {
	return Variant[S]{}
}

// Bool returns a boolean value.
func Bool[S Storage](b bool) Variant[S] {
	v := Variant[S]{kind: KindBool}
	if b {
		v.bits = 1
	}

	return v
}

// Int returns an integer value. Negative integers produce KindInt, every other
// value KindUint, whatever the width and signedness of T.
func Int[S Storage, T Integer](i T) Variant[S] {
	if i < 0 {
		return Variant[S]{kind: KindInt, bits: uint64(int64(i))} //nolint:gosec
	}

	return Variant[S]{kind: KindUint, bits: uint64(i)} //nolint:gosec
}

// Uint returns a non-negative integer value.
func Uint[S Storage](u uint64) Variant[S] {
	return Variant[S]{kind: KindUint, bits: u}
}

// Float returns a floating point value. float32 arguments are widened.
func Float[S Storage, T Floating](f T) Variant[S] {
	return Variant[S]{kind: KindFloat, bits: math.Float64bits(float64(f))}
}

// Str returns a string value.
func Str[S Storage](s string) Variant[S] {
	return Variant[S]{kind: KindStr, data: captureString[S](s)}
}

// StrBytes returns a string value whose bytes are b.
func StrBytes[S Storage](b []byte) Variant[S] {
	return Variant[S]{kind: KindStr, data: capture[S](b)}
}

// Bin returns a binary value.
func Bin[S Storage](b []byte) Variant[S] {
	return Variant[S]{kind: KindBin, data: capture[S](b)}
}

// Ext returns an extension value of type typ.
func Ext[S Storage](typ int8, data []byte) Variant[S] {
	return Variant[S]{kind: KindExt, ext: typ, data: capture[S](data)}
}

// Array returns an array value holding elems in order.
func Array[S Storage](elems ...Variant[S]) Variant[S] {
	return Variant[S]{kind: KindArray, arr: slices.Clip(slices.Clone(elems))}
}

// Map returns a map value holding pairs in order. Duplicate keys are kept.
func Map[S Storage](pairs ...Pair[S]) Variant[S] {
	return Variant[S]{kind: KindMap, kv: slices.Clip(slices.Clone(pairs))}
}

// KV returns a map entry.
func KV[S Storage](key, val Variant[S]) Pair[S] {
	return Pair[S]{Key: key, Val: val}
}

// NewArray returns an owning array value.
func NewArray(elems ...Value) Value {
	return Array(elems...)
}

// NewMap returns an owning map value.
func NewMap(pairs ...Pair[Owned]) Value {
	return Map(pairs...)
}

// Kind returns the active case.
func (v Variant[S]) Kind() Kind {
	return v.kind
}

// IsNil reports whether v is the nil value.
func (v Variant[S]) IsNil() bool {
	return v.kind == KindNil
}

// Len returns the element count of arrays, the entry count of maps and the
// payload length of str, bin and ext values. It returns 0 for other kinds.
func (v Variant[S]) Len() int {
	switch v.kind { //nolint: exhaustive
	case KindArray:
		return len(v.arr)
	case KindMap:
		return len(v.kv)
	case KindStr, KindBin, KindExt:
		return len(v.data)
	default:
		return 0
	}
}

// At returns the i-th element of an array value. It returns false if v is not
// an array or i is out of range.
func (v Variant[S]) At(i int) (Variant[S], bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Variant[S]{}, false
	}

	return v.arr[i], true
}
