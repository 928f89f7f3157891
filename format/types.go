// Package format defines the MessagePack format bytes, the value categories a
// format byte classifies into, and the compression identifiers used by frames.
package format

import "strings"

type (
	Category        uint8
	CompressionType uint8
)

// Value categories. Every well-formed format byte maps to exactly one of them.
const (
	CategoryUnknown  Category = 0x0 // CategoryUnknown is never produced by Classify for a valid byte.
	CategoryNil      Category = 0x1 // CategoryNil represents nil.
	CategoryBool     Category = 0x2 // CategoryBool represents true and false.
	CategoryPosInt   Category = 0x3 // CategoryPosInt represents non-negative integers.
	CategoryNegInt   Category = 0x4 // CategoryNegInt represents negative integers.
	CategoryFloat    Category = 0x5 // CategoryFloat represents float32 and float64.
	CategoryStr      Category = 0x6 // CategoryStr represents UTF-8 strings.
	CategoryBin      Category = 0x7 // CategoryBin represents raw binary.
	CategoryExt      Category = 0x8 // CategoryExt represents typed extension payloads.
	CategoryArray    Category = 0x9 // CategoryArray represents arrays.
	CategoryMap      Category = 0xa // CategoryMap represents maps.
	categoryBoundary Category = 0xb
)

const (
	CompressionNone   CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents Snappy block compression.
)

// MessagePack format bytes.
const (
	PosFixIntMax byte = 0x7f
	FixMapMin    byte = 0x80
	FixMapMax    byte = 0x8f
	FixArrayMin  byte = 0x90
	FixArrayMax  byte = 0x9f
	FixStrMin    byte = 0xa0
	FixStrMax    byte = 0xbf
	Nil          byte = 0xc0
	Reserved     byte = 0xc1
	False        byte = 0xc2
	True         byte = 0xc3
	Bin8         byte = 0xc4
	Bin16        byte = 0xc5
	Bin32        byte = 0xc6
	Ext8         byte = 0xc7
	Ext16        byte = 0xc8
	Ext32        byte = 0xc9
	Float32      byte = 0xca
	Float64      byte = 0xcb
	Uint8        byte = 0xcc
	Uint16       byte = 0xcd
	Uint32       byte = 0xce
	Uint64       byte = 0xcf
	Int8         byte = 0xd0
	Int16        byte = 0xd1
	Int32        byte = 0xd2
	Int64        byte = 0xd3
	FixExt1      byte = 0xd4
	FixExt2      byte = 0xd5
	FixExt4      byte = 0xd6
	FixExt8      byte = 0xd7
	FixExt16     byte = 0xd8
	Str8         byte = 0xd9
	Str16        byte = 0xda
	Str32        byte = 0xdb
	Array16      byte = 0xdc
	Array32      byte = 0xdd
	Map16        byte = 0xde
	Map32        byte = 0xdf
	NegFixIntMin byte = 0xe0
)

// Fix-size masks and limits.
const (
	FixMapMaxLen   = 0x0f
	FixArrayMaxLen = 0x0f
	FixStrMaxLen   = 0x1f
	NegFixIntLow   = -32
)

// Classify maps a format byte to its value category.
//
// Signed integer format bytes classify as CategoryNegInt; the parser
// reclassifies non-negative payloads as CategoryPosInt once the value is known.
// The reserved byte 0xc1 reports ok == false.
func Classify(b byte) (Category, bool) {
	switch {
	case b <= PosFixIntMax:
		return CategoryPosInt, true
	case b <= FixMapMax:
		return CategoryMap, true
	case b <= FixArrayMax:
		return CategoryArray, true
	case b <= FixStrMax:
		return CategoryStr, true
	case b >= NegFixIntMin:
		return CategoryNegInt, true
	}

	switch b {
	case Nil:
		return CategoryNil, true
	case False, True:
		return CategoryBool, true
	case Bin8, Bin16, Bin32:
		return CategoryBin, true
	case Ext8, Ext16, Ext32, FixExt1, FixExt2, FixExt4, FixExt8, FixExt16:
		return CategoryExt, true
	case Float32, Float64:
		return CategoryFloat, true
	case Uint8, Uint16, Uint32, Uint64:
		return CategoryPosInt, true
	case Int8, Int16, Int32, Int64:
		return CategoryNegInt, true
	case Str8, Str16, Str32:
		return CategoryStr, true
	case Array16, Array32:
		return CategoryArray, true
	case Map16, Map32:
		return CategoryMap, true
	default:
		return CategoryUnknown, false
	}
}

// Valid reports whether c is one of the ten recognized categories.
func (c Category) Valid() bool {
	return c > CategoryUnknown && c < categoryBoundary
}

// IsScalar reports whether values of this category need no backing storage.
func (c Category) IsScalar() bool {
	switch c { //nolint: exhaustive
	case CategoryNil, CategoryBool, CategoryPosInt, CategoryNegInt, CategoryFloat:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	switch c {
	case CategoryNil:
		return "Nil"
	case CategoryBool:
		return "Bool"
	case CategoryPosInt:
		return "PositiveInteger"
	case CategoryNegInt:
		return "NegativeInteger"
	case CategoryFloat:
		return "Float"
	case CategoryStr:
		return "Str"
	case CategoryBin:
		return "Bin"
	case CategoryExt:
		return "Ext"
	case CategoryArray:
		return "Array"
	case CategoryMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a supported compression type.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionSnappy
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses the lower- or mixed-case name of a compression type.
func ParseCompressionType(name string) (CompressionType, bool) {
	for c := CompressionNone; c <= CompressionSnappy; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}

	return 0, false
}
