package variant

// Shorthands for building owning values.

// NewNil returns the nil Value.
func NewNil() Value { return Value{} }

// NewBool returns a boolean Value.
func NewBool(b bool) Value { return Bool[Owned](b) }

// NewInt returns an integer Value, classified by sign like Int.
func NewInt[T Integer](i T) Value { return Int[Owned](i) }

// NewUint returns a non-negative integer Value.
func NewUint(u uint64) Value { return Uint[Owned](u) }

// NewFloat returns a floating point Value.
func NewFloat(f float64) Value { return Float[Owned](f) }

// NewStr returns a string Value.
func NewStr(s string) Value { return Str[Owned](s) }

// NewBin returns a binary Value holding a copy of b.
func NewBin(b []byte) Value { return Bin[Owned](b) }

// NewExt returns an extension Value holding a copy of data.
func NewExt(typ int8, data []byte) Value { return Ext[Owned](typ, data) }
