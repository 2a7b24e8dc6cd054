package heap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapkit/internal/arena"
)

func TestGrowthConsumesArenaInChunks(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	before := h.HeapSize()
	p := mustMalloc(t, h, 16)
	assert.Equal(t, before, h.HeapSize(), "small request fits the initial chunk")

	q := mustMalloc(t, h, 8192)
	assert.Greater(t, h.HeapSize(), before, "oversized request grows the heap")
	assert.Equal(t, 2, h.Stats().GrowCalls, "initial chunk plus one grow")

	require.NoError(t, h.Free(p))
	require.NoError(t, h.Free(q))
}

func TestExhaustionReturnsErrNoSpace(t *testing.T) {
	ar, err := arena.New(1 << 14) // 16 KiB, room for a few chunks only
	require.NoError(t, err)
	t.Cleanup(func() { _ = ar.Close() })
	h := New(ar, &Config{ChunkSize: 4096, FitLookahead: 9, CheckEvery: true})

	var live []Ptr
	for {
		p, err := h.Malloc(1024)
		if err != nil {
			assert.ErrorIs(t, err, ErrNoSpace)
			assert.Zero(t, p)
			break
		}
		live = append(live, p)
		require.Less(t, len(live), 64, "arena never ran out")
	}

	// The failed call left the heap fully usable: every earlier allocation
	// survives and freed space is recycled.
	require.NoError(t, h.Check("after exhaustion"))
	require.NoError(t, h.Free(live[0]))
	p, err := h.Malloc(1024)
	require.NoError(t, err)
	assert.Equal(t, live[0], p)
	live[0] = p

	for _, p := range live {
		require.NoError(t, h.Free(p))
	}
	assert.Equal(t, 1, freeCount(h))
}

func TestHugeRequestOverflows(t *testing.T) {
	h := newTestHeap(t, 1<<16)

	// Sizes near the top of the uint64 range would wrap during block
	// rounding; they are rejected before any size arithmetic.
	p, err := h.Malloc(math.MaxUint64)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Zero(t, p)

	p, err = h.Malloc(math.MaxUint64 - 20)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Zero(t, p)

	// Realloc routes through the same guard.
	q := mustMalloc(t, h, 64)
	_, err = h.Realloc(q, math.MaxUint64)
	assert.ErrorIs(t, err, ErrOverflow)
	require.NoError(t, h.Free(q))
}

func TestOversizedRequestFailsCleanly(t *testing.T) {
	ar, err := arena.New(1 << 14)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ar.Close() })
	h := New(ar, nil)

	p, err := h.Malloc(1 << 20)
	assert.ErrorIs(t, err, ErrNoSpace)
	assert.Zero(t, p)

	// A reasonable request still succeeds afterwards.
	p = mustMalloc(t, h, 64)
	assert.NotZero(t, p)
}
