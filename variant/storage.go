package variant

import (
	"bytes"
	"unsafe"
)

// Storage selects how a Variant holds the payload bytes of Str, Bin and Ext
// values. It is implemented only by Owned and Borrowed.
type Storage interface {
	Owned | Borrowed

	capture(b []byte) []byte
	captureString(s string) []byte
	owns() bool
}

// Owned is the storage of values that own their payloads: every payload handed
// to a constructor or decoded from a buffer is copied.
type Owned struct{}

// Borrowed is the storage of values whose payloads are views into memory owned
// by someone else, typically the buffer a value was decoded from. A Borrowed
// value must not outlive that memory, and the memory must not be modified
// while the value is in use.
type Borrowed struct{}

func (Owned) capture(b []byte) []byte {
	if b == nil {
		return nil
	}

	return bytes.Clone(b)
}

func (Owned) captureString(s string) []byte {
	return []byte(s)
}

func (Owned) owns() bool { return true }

func (Borrowed) capture(b []byte) []byte {
	return b[:len(b):len(b)]
}

// captureString views the string's bytes. The result is never written to.
func (Borrowed) captureString(s string) []byte {
	if s == "" {
		return []byte{}
	}

	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (Borrowed) owns() bool { return false }

func capture[S Storage](b []byte) []byte {
	var s S
	return s.capture(b)
}

func captureString[S Storage](s string) []byte {
	var st S
	return st.captureString(s)
}

func owns[S Storage]() bool {
	var s S
	return s.owns()
}
