package variant

import (
	"encoding/hex"
	"math"
	"slices"
	"strconv"
	"strings"
)

// String renders v in a JSON-like notation:
//
//	{"id":42,"tags":["a","b"],"raw":b"00ff","x":ext(5,"0102"),"none":null}
//
// Strings are quoted with Go escaping, binary and extension payloads are
// shown in hex. The output is meant for humans; it is not parseable.
func (v Variant[S]) String() string {
	var sb strings.Builder
	v.writeTo(&sb)

	return sb.String()
}

func (v Variant[S]) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindNil:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.bits != 0))
	case KindInt:
		sb.WriteString(strconv.FormatInt(int64(v.bits), 10)) //nolint:gosec
	case KindUint:
		sb.WriteString(strconv.FormatUint(v.bits, 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(math.Float64frombits(v.bits), 'g', -1, 64))
	case KindStr:
		sb.WriteString(strconv.Quote(string(v.data)))
	case KindBin:
		sb.WriteString(`b"`)
		sb.WriteString(hex.EncodeToString(v.data))
		sb.WriteByte('"')
	case KindExt:
		sb.WriteString("ext(")
		sb.WriteString(strconv.Itoa(int(v.ext)))
		sb.WriteString(`,"`)
		sb.WriteString(hex.EncodeToString(v.data))
		sb.WriteString(`")`)
	case KindArray:
		sb.WriteByte('[')
		for i := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			v.arr[i].writeTo(sb)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i := range v.kv {
			if i > 0 {
				sb.WriteByte(',')
			}
			v.kv[i].Key.writeTo(sb)
			sb.WriteByte(':')
			v.kv[i].Val.writeTo(sb)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid>")
	}
}

// Canonical returns a copy of v in which the entries of every map are sorted
// by key. Entries with equal keys keep their relative order, so duplicates
// survive. Maps that differ only in the order of entries with distinct keys
// have equal canonical forms and encodings.
func (v Variant[S]) Canonical() Variant[S] {
	switch v.kind { //nolint: exhaustive
	case KindArray:
		arr := make([]Variant[S], len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].Canonical()
		}

		return Variant[S]{kind: KindArray, arr: arr}
	case KindMap:
		kv := make([]Pair[S], len(v.kv))
		for i := range v.kv {
			kv[i] = Pair[S]{Key: v.kv[i].Key.Canonical(), Val: v.kv[i].Val.Canonical()}
		}
		slices.SortStableFunc(kv, func(a, b Pair[S]) int {
			return Compare(a.Key, b.Key)
		})

		return Variant[S]{kind: KindMap, kv: kv}
	default:
		return v
	}
}
