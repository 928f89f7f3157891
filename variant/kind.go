package variant

import "github.com/arloliu/mpvalue/format"

// Kind identifies the active case of a Variant.
//
// Kinds are declared in ranking order: values of different kinds compare by
// their Kind, so every Nil sorts before every Bool, every negative integer
// before every positive one, and so on up to Map.
type Kind uint8

const (
	KindNil   Kind = iota // KindNil is the zero value of every Variant.
	KindBool              // KindBool holds true or false.
	KindInt               // KindInt holds a negative integer.
	KindUint              // KindUint holds a non-negative integer.
	KindFloat             // KindFloat holds a float64.
	KindStr               // KindStr holds string bytes.
	KindBin               // KindBin holds binary bytes.
	KindExt               // KindExt holds an extension type and its bytes.
	KindArray             // KindArray holds an ordered list of values.
	KindMap               // KindMap holds an ordered list of key/value pairs.
)

// kindCount is the number of kinds.
const kindCount = int(KindMap) + 1

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindBin:
		return "Bin"
	case KindExt:
		return "Ext"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// Category returns the wire category that values of kind k are encoded as.
func (k Kind) Category() format.Category {
	switch k {
	case KindNil:
		return format.CategoryNil
	case KindBool:
		return format.CategoryBool
	case KindInt:
		return format.CategoryNegInt
	case KindUint:
		return format.CategoryPosInt
	case KindFloat:
		return format.CategoryFloat
	case KindStr:
		return format.CategoryStr
	case KindBin:
		return format.CategoryBin
	case KindExt:
		return format.CategoryExt
	case KindArray:
		return format.CategoryArray
	case KindMap:
		return format.CategoryMap
	default:
		return format.CategoryUnknown
	}
}

// kindOf maps a wire category to the kind decoding produces for it.
func kindOf(c format.Category) (Kind, bool) {
	switch c { //nolint: exhaustive
	case format.CategoryNil:
		return KindNil, true
	case format.CategoryBool:
		return KindBool, true
	case format.CategoryNegInt:
		return KindInt, true
	case format.CategoryPosInt:
		return KindUint, true
	case format.CategoryFloat:
		return KindFloat, true
	case format.CategoryStr:
		return KindStr, true
	case format.CategoryBin:
		return KindBin, true
	case format.CategoryExt:
		return KindExt, true
	case format.CategoryArray:
		return KindArray, true
	case format.CategoryMap:
		return KindMap, true
	default:
		return KindNil, false
	}
}
