package wire

import (
	"github.com/arloliu/mpvalue/format"
)

// Object is one parsed MessagePack node.
//
// Only the fields that belong to Category are meaningful. Bytes holds the
// payload of Str, Bin and Ext nodes and points into the parsed buffer (or into
// the Zone that produced the node); Array and Map children are allocated from
// the Zone passed to the parser.
//
// Objects are plain values: copying an Object copies the header only, the
// payload and children stay shared.
type Object struct {
	Category format.Category
	Bool     bool
	ExtType  int8
	Uint     uint64
	Int      int64
	Float    float64
	Bytes    []byte
	Array    []Object
	Map      []ObjectKV
}

// ObjectKV is one key/value entry of a map node.
type ObjectKV struct {
	Key Object
	Val Object
}

// NilObject returns a Nil node.
func NilObject() Object {
	return Object{Category: format.CategoryNil}
}

// BoolObject returns a Bool node.
func BoolObject(b bool) Object {
	return Object{Category: format.CategoryBool, Bool: b}
}

// UintObject returns a positive-integer node.
func UintObject(u uint64) Object {
	return Object{Category: format.CategoryPosInt, Uint: u}
}

// IntObject returns an integer node, classified by sign as the wire format does.
func IntObject(i int64) Object {
	if i >= 0 {
		return UintObject(uint64(i))
	}

	return Object{Category: format.CategoryNegInt, Int: i}
}

// FloatObject returns a Float node.
func FloatObject(f float64) Object {
	return Object{Category: format.CategoryFloat, Float: f}
}

// StrObject returns a Str node viewing b.
func StrObject(b []byte) Object {
	return Object{Category: format.CategoryStr, Bytes: b}
}

// BinObject returns a Bin node viewing b.
func BinObject(b []byte) Object {
	return Object{Category: format.CategoryBin, Bytes: b}
}

// ExtObject returns an Ext node viewing data.
func ExtObject(typ int8, data []byte) Object {
	return Object{Category: format.CategoryExt, ExtType: typ, Bytes: data}
}

// ArrayObject returns an Array node over elems.
func ArrayObject(elems []Object) Object {
	return Object{Category: format.CategoryArray, Array: elems}
}

// MapObject returns a Map node over entries.
func MapObject(entries []ObjectKV) Object {
	return Object{Category: format.CategoryMap, Map: entries}
}

// Len returns the element count of arrays and maps and the payload length of
// str, bin and ext nodes; zero otherwise.
func (o Object) Len() int {
	switch o.Category { //nolint: exhaustive
	case format.CategoryArray:
		return len(o.Array)
	case format.CategoryMap:
		return len(o.Map)
	case format.CategoryStr, format.CategoryBin, format.CategoryExt:
		return len(o.Bytes)
	default:
		return 0
	}
}
