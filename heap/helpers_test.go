package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapkit/internal/arena"
)

// newTestHeap builds an initialized heap over a fresh arena with the
// consistency checker armed, so any invariant slip panics at the faulty
// operation instead of surfacing later.
func newTestHeap(t testing.TB, capacity uint64) *Heap {
	t.Helper()
	cfg := DefaultConfig
	cfg.CheckEvery = true
	return newTestHeapCfg(t, capacity, &cfg)
}

func newTestHeapCfg(t testing.TB, capacity uint64, cfg *Config) *Heap {
	t.Helper()
	ar, err := arena.New(capacity)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ar.Close() })

	h := New(ar, cfg)
	require.NoError(t, h.Init())
	return h
}

// mustMalloc allocates or fails the test.
func mustMalloc(t testing.TB, h *Heap, size uint64) Ptr {
	t.Helper()
	p, err := h.Malloc(size)
	require.NoError(t, err)
	require.NotZero(t, p)
	return p
}

// freeCount walks the implicit list and counts free blocks.
func freeCount(h *Heap) int {
	n := 0
	for off := h.heapStart; off < h.epilogue(); off = h.nextBlock(off) {
		if !wordAlloc(h, off) {
			n++
		}
	}
	return n
}

func wordAlloc(h *Heap, off uint64) bool {
	return h.header(off)&0x1 != 0
}
