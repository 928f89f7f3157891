package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorWriter struct {
	err error
}

func (w *errorWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(PackBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	n, err := bb.Write([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	assert.Equal(t, []byte("hello world"), bb.Bytes())
	assert.Equal(t, 11, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(PackBufferDefaultSize)
	bb.MustWrite([]byte("some data"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	t.Run("copies contents", func(t *testing.T) {
		bb := NewByteBuffer(PackBufferDefaultSize)
		bb.MustWrite([]byte("test data"))

		var buf bytes.Buffer
		n, err := bb.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(9), n)
		assert.Equal(t, "test data", buf.String())
	})

	t.Run("propagates writer error", func(t *testing.T) {
		bb := NewByteBuffer(PackBufferDefaultSize)
		bb.MustWrite([]byte("test"))

		n, err := bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
		require.ErrorIs(t, err, io.ErrShortWrite)
		assert.Equal(t, int64(0), n)
	})
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity is a no-op", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		bb.MustWrite([]byte("0123456789"))
		bb.Grow(1)
		assert.Equal(t, 10+PackBufferDefaultSize, bb.Cap())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * PackBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("grows by at least the required bytes", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(3 * PackBufferDefaultSize)
		assert.GreaterOrEqual(t, bb.Cap(), 3*PackBufferDefaultSize)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.MustWrite([]byte("data"))
		bb.Grow(1000)
		assert.Equal(t, []byte("data"), bb.Bytes())
	})
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.Grow(1024)
	bb.MustWrite([]byte("x"))
	p.Put(bb)

	next := p.Get()
	assert.Equal(t, 0, next.Len())
	assert.LessOrEqual(t, next.Cap(), 64, "oversized buffers must not be retained")

	p.Put(nil)
}

func TestDefaultPools(t *testing.T) {
	pb := GetPackBuffer()
	require.NotNil(t, pb)
	assert.Equal(t, 0, pb.Len())
	pb.MustWrite([]byte("pack"))
	PutPackBuffer(pb)

	fb := GetFrameBuffer()
	require.NotNil(t, fb)
	assert.Equal(t, 0, fb.Len())
	assert.GreaterOrEqual(t, fb.Cap(), FrameBufferDefaultSize)
	PutFrameBuffer(fb)

	PutPackBuffer(nil)
	PutFrameBuffer(nil)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 32
	const numIterations = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetPackBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutPackBuffer(bb)
			}
		}()
	}

	wg.Wait()
}
