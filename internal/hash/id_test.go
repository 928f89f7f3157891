package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum64(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, Sum64([]byte(tt.data)))
		})
	}
}

func TestHasher_Deterministic(t *testing.T) {
	sum := func() uint64 {
		h := Get()
		defer Put(h)
		h.WriteTag(3)
		h.WriteUint64(42)
		h.WriteBytes([]byte("payload"))

		return h.Sum64()
	}

	require.Equal(t, sum(), sum())
}

func TestHasher_LengthPrefix(t *testing.T) {
	h1 := Get()
	h1.WriteBytes([]byte("ab"))
	h1.WriteBytes([]byte("c"))
	s1 := h1.Sum64()
	Put(h1)

	h2 := Get()
	h2.WriteBytes([]byte("a"))
	h2.WriteBytes([]byte("bc"))
	s2 := h2.Sum64()
	Put(h2)

	require.NotEqual(t, s1, s2)
}

func TestHasher_ResetOnGet(t *testing.T) {
	h := Get()
	h.WriteTag(1)
	Put(h)

	fresh := Get()
	defer Put(fresh)
	empty := Get()
	defer Put(empty)
	require.Equal(t, empty.Sum64(), fresh.Sum64())
}

func BenchmarkHasher(b *testing.B) {
	payload := []byte("benchmark payload of moderate size")
	for b.Loop() {
		h := Get()
		h.WriteTag(6)
		h.WriteBytes(payload)
		_ = h.Sum64()
		Put(h)
	}
}
