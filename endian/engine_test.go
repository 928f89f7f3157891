package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestWire(t *testing.T) {
	engine := Wire()
	require.Equal(t, binary.BigEndian, engine)

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
	require.Equal(t, uint32(0x01020304), engine.Uint32(buf))
}

func TestNative(t *testing.T) {
	var word uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&word))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, Native())
		require.True(t, IsNativeWire())
	case 0x02:
		require.Equal(t, binary.LittleEndian, Native())
		require.False(t, IsNativeWire())
	default:
		require.Failf(t, "unexpected byte value", "got: %v", first)
	}
}

func BenchmarkWireAppendUint64(b *testing.B) {
	engine := Wire()
	buf := make([]byte, 0, 8)
	for b.Loop() {
		buf = engine.AppendUint64(buf[:0], 0x0102030405060708)
	}
}
