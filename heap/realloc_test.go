package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReallocGrowPreservesPrefix(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	p := mustMalloc(t, h, 64)
	buf := h.Bytes(p)
	for i := 0; i < 64; i++ {
		buf[i] = byte(i)
	}

	q, err := h.Realloc(p, 256)
	require.NoError(t, err)
	require.NotZero(t, q)
	got := h.Bytes(q)
	require.GreaterOrEqual(t, len(got), 256)
	for i := 0; i < 64; i++ {
		assert.Equal(t, byte(i), got[i], "byte %d", i)
	}

	require.NoError(t, h.Free(q))
}

func TestReallocShrinkKeepsLeadingBytes(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	p := mustMalloc(t, h, 200)
	buf := h.Bytes(p)
	for i := 0; i < 200; i++ {
		buf[i] = byte(i * 7)
	}

	q, err := h.Realloc(p, 40)
	require.NoError(t, err)
	require.NotZero(t, q)
	got := h.Bytes(q)
	for i := 0; i < 40; i++ {
		assert.Equal(t, byte(i*7), got[i], "byte %d", i)
	}

	require.NoError(t, h.Free(q))
}

func TestReallocNilActsAsMalloc(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	p, err := h.Realloc(0, 128)
	require.NoError(t, err)
	require.NotZero(t, p)
	assert.GreaterOrEqual(t, h.PayloadSize(p), uint64(128))
	assert.Equal(t, 1, h.Stats().MallocCalls)

	require.NoError(t, h.Free(p))
}

func TestReallocZeroActsAsFree(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	p := mustMalloc(t, h, 64)
	q, err := h.Realloc(p, 0)
	require.NoError(t, err)
	assert.Zero(t, q)
	assert.Equal(t, 1, h.Stats().FreeCalls)
	assert.Equal(t, 1, freeCount(h))
}

func TestReallocChain(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	// Repeated doubling with a pattern check at every step, the way a
	// growing vector uses the allocator.
	p := mustMalloc(t, h, 16)
	paint := func(b []byte) {
		for i := range b {
			b[i] = byte(i*13 + 5)
		}
	}
	paint(h.Bytes(p)[:16])

	size := uint64(16)
	for size < 4096 {
		next := size * 2
		q, err := h.Realloc(p, next)
		require.NoError(t, err)
		require.NotZero(t, q)
		got := h.Bytes(q)
		for i := 0; i < int(size); i++ {
			require.Equal(t, byte(i*13+5), got[i], "size %d byte %d", next, i)
		}
		paint(got[:next])
		p, size = q, next
	}

	require.NoError(t, h.Free(p))
	assert.Equal(t, 1, freeCount(h))
}
