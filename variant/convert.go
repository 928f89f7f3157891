package variant

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/arloliu/mpvalue/errs"
)

// Own returns a deep copy of v that owns every payload.
//
// For a Ref this materializes all borrowed str, bin and ext bytes; the result
// no longer depends on the buffer the Ref was decoded from.
func (v Variant[S]) Own() Value {
	return recast[Owned](v)
}

// View returns a Ref over v's payloads. No payload bytes are copied; the Ref
// is valid as long as v's payloads are.
func (v Variant[S]) View() Ref {
	return recast[Borrowed](v)
}

// recast rebuilds v in storage D. Children are always rebuilt; payloads are
// captured according to D.
func recast[D, S Storage](v Variant[S]) Variant[D] {
	out := Variant[D]{kind: v.kind, ext: v.ext, bits: v.bits}

	switch v.kind { //nolint: exhaustive
	case KindStr, KindBin, KindExt:
		out.data = capture[D](v.data)
	case KindArray:
		if v.arr != nil {
			out.arr = make([]Variant[D], len(v.arr))
			for i := range v.arr {
				out.arr[i] = recast[D](v.arr[i])
			}
		}
	case KindMap:
		if v.kv != nil {
			out.kv = make([]Pair[D], len(v.kv))
			for i := range v.kv {
				out.kv[i] = Pair[D]{Key: recast[D](v.kv[i].Key), Val: recast[D](v.kv[i].Val)}
			}
		}
	}

	return out
}

var bytesType = reflect.TypeFor[[]byte]()

// Of converts a native Go value into a Variant.
//
// Supported inputs are nil, bool, every integer and float type, string,
// []byte, Extension, a Value or Ref (recast to S) and, recursively, slices, arrays,
// maps and pointers to supported values. Go maps have no order, so their
// entries are sorted by key with Compare. Other inputs fail with
// errs.ErrUnsupportedNative.
func Of[S Storage](x any) (Variant[S], error) {
	switch t := x.(type) {
	case nil:
		return Variant[S]{}, nil
	case Variant[S]:
		return t, nil
	case Value:
		return recast[S](t), nil
	case Ref:
		return recast[S](t), nil
	case Extension:
		return Ext[S](t.Type, t.Data), nil
	case bool:
		return Bool[S](t), nil
	case string:
		return Str[S](t), nil
	case []byte:
		return Bin[S](t), nil
	case int:
		return Int[S](t), nil
	case int64:
		return Int[S](t), nil
	case uint64:
		return Uint[S](t), nil
	case float64:
		return Float[S](t), nil
	}

	return ofReflect[S](reflect.ValueOf(x), 0)
}

// MustOf is like Of but panics on unsupported input.
func MustOf[S Storage](x any) Variant[S] {
	v, err := Of[S](x)
	if err != nil {
		panic(err)
	}

	return v
}

func ofReflect[S Storage](rv reflect.Value, depth int) (Variant[S], error) {
	if depth > DefaultMaxDepth {
		return Variant[S]{}, fmt.Errorf("%w: more than %d nested containers", errs.ErrDepthExceeded, DefaultMaxDepth)
	}

	if !rv.IsValid() {
		return Variant[S]{}, nil
	}

	if rv.CanInterface() {
		switch t := rv.Interface().(type) {
		case Variant[S]:
			return t, nil
		case Value:
			return recast[S](t), nil
		case Ref:
			return recast[S](t), nil
		case Extension:
			return Ext[S](t.Type, t.Data), nil
		}
	}

	switch rv.Kind() { //nolint: exhaustive
	case reflect.Bool:
		return Bool[S](rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int[S](rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint[S](rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float[S](rv.Float()), nil
	case reflect.String:
		return Str[S](rv.String()), nil
	case reflect.Interface:
		if rv.IsNil() {
			return Variant[S]{}, nil
		}

		return ofReflect[S](rv.Elem(), depth)
	case reflect.Pointer:
		if rv.IsNil() {
			return Variant[S]{}, nil
		}

		// pointer hops count toward the depth limit so reference cycles end
		return ofReflect[S](rv.Elem(), depth+1)
	case reflect.Slice:
		if rv.Type().ConvertibleTo(bytesType) {
			return Bin[S](rv.Convert(bytesType).Bytes()), nil
		}
		if rv.IsNil() {
			return Variant[S]{}, nil
		}

		return ofList[S](rv, depth)
	case reflect.Array:
		return ofList[S](rv, depth)
	case reflect.Map:
		if rv.IsNil() {
			return Variant[S]{}, nil
		}

		return ofMap[S](rv, depth)
	default:
		return Variant[S]{}, fmt.Errorf("%w: %s", errs.ErrUnsupportedNative, rv.Type())
	}
}

func ofList[S Storage](rv reflect.Value, depth int) (Variant[S], error) {
	arr := make([]Variant[S], rv.Len())
	for i := range arr {
		elem, err := ofReflect[S](rv.Index(i), depth+1)
		if err != nil {
			return Variant[S]{}, err
		}
		arr[i] = elem
	}

	return Variant[S]{kind: KindArray, arr: arr}, nil
}

func ofMap[S Storage](rv reflect.Value, depth int) (Variant[S], error) {
	kv := make([]Pair[S], 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := ofReflect[S](iter.Key(), depth+1)
		if err != nil {
			return Variant[S]{}, err
		}
		val, err := ofReflect[S](iter.Value(), depth+1)
		if err != nil {
			return Variant[S]{}, err
		}
		kv = append(kv, Pair[S]{Key: key, Val: val})
	}

	slices.SortStableFunc(kv, func(a, b Pair[S]) int {
		if c := Compare(a.Key, b.Key); c != 0 {
			return c
		}

		return Compare(a.Val, b.Val)
	})

	return Variant[S]{kind: KindMap, kv: kv}, nil
}
