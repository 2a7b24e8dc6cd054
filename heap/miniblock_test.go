package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapkit/internal/word"
)

// Requests of up to eight bytes round up to the 16-byte minimum and are
// encoded as mini blocks: a header plus a single link word, no footer.

func TestMiniBlockEncoding(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	p := mustMalloc(t, h, 8)
	assert.Equal(t, uint64(8), h.PayloadSize(p))
	hdr := h.header(p - 8)
	assert.True(t, word.Mini(hdr))
	assert.Equal(t, uint64(16), word.BlockSize(hdr))

	require.NoError(t, h.Free(p))
}

func TestMiniBucketIsReusedLIFO(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	// Interleave minis with live spacers so frees cannot coalesce, then
	// confirm the freed minis come back newest-first from bucket zero.
	var minis, pads []Ptr
	for n := 0; n < 4; n++ {
		minis = append(minis, mustMalloc(t, h, 8))
		pads = append(pads, mustMalloc(t, h, 48))
	}
	for _, p := range minis {
		require.NoError(t, h.Free(p))
	}
	for i := 3; i >= 0; i-- {
		p := mustMalloc(t, h, 8)
		assert.Equal(t, minis[i], p)
	}

	for _, p := range pads {
		require.NoError(t, h.Free(p))
	}
}

func TestMiniInteriorRemoval(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	// Three free minis populate bucket zero; pulling the middle one out
	// exercises the root-scan predecessor lookup, since mini blocks carry
	// no predecessor link.
	var minis, pads []Ptr
	for n := 0; n < 3; n++ {
		minis = append(minis, mustMalloc(t, h, 8))
		pads = append(pads, mustMalloc(t, h, 48))
	}
	for _, p := range minis {
		require.NoError(t, h.Free(p))
	}
	// Bucket order: minis[2], minis[1], minis[0].
	h.removeFree(minis[1] - 8)
	require.Equal(t, minis[2]-8, h.roots[0])
	require.Equal(t, minis[0]-8, h.succ(h.roots[0]))
	h.insertFree(minis[1] - 8)
	require.NoError(t, h.Check("after mini reinsertion"))

	for _, p := range pads {
		require.NoError(t, h.Free(p))
	}
}

func TestMiniNeighborBackScan(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	// A free mini directly before a block being freed has no footer; the
	// coalescer must still find its header through the tagged link word.
	mini := mustMalloc(t, h, 8)
	mid := mustMalloc(t, h, 100)
	pad := mustMalloc(t, h, 48)

	require.NoError(t, h.Free(mini))
	require.NoError(t, h.Free(mid))

	// mini and mid merged into one block starting at mini's header.
	merged := mini - 8
	size := h.blockSize(merged)
	assert.Equal(t, uint64(16)+adjustSize(100), size)
	assert.False(t, word.Mini(h.header(merged)))

	require.NoError(t, h.Free(pad))
}

func TestMiniChurn(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	// Repeated alloc/free cycles over a pool of minis, with the armed
	// checker validating bucket-zero traversal on every call.
	live := make([]Ptr, 0, 8)
	for cycle := 0; cycle < 50; cycle++ {
		for len(live) < 8 {
			live = append(live, mustMalloc(t, h, uint64(1+cycle%8)))
		}
		drop := (cycle % 3) + 1
		for n := 0; n < drop; n++ {
			p := live[len(live)-1]
			live = live[:len(live)-1]
			require.NoError(t, h.Free(p))
		}
	}
	for _, p := range live {
		require.NoError(t, h.Free(p))
	}
	assert.Equal(t, 1, freeCount(h))
}
