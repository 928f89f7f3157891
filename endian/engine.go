// Package endian provides the byte order engine used by the frame header codec.
//
// Frame headers store their lengths and checksum in big-endian order, the
// byte order of the MessagePack payloads they carry, and obtain their engine
// from Wire(). The engine combines binary.ByteOrder and binary.AppendByteOrder
// so the header writer can append directly to its buffer:
//
//	engine := endian.Wire()
//	buf = engine.AppendUint32(buf, n)
//
// All functions in this package are safe for concurrent use; the returned
// engines are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Wire returns the byte order of frame headers and the MessagePack wire format.
func Wire() EndianEngine {
	return binary.BigEndian
}

// Native returns the host byte order.
func Native() EndianEngine {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeWire reports whether the host byte order matches the wire order.
func IsNativeWire() bool {
	return Native() == Wire()
}
