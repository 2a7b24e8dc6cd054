package heap

import (
	"fmt"
	"os"

	"github.com/heaplab/heapkit/internal/word"
)

// extendHeap grows the arena by at least size bytes, writes one free block
// spanning the new space, relocates the epilogue to the new heap end, and
// coalesces with whatever was previously the last block. Returns the
// (possibly merged) new free block's offset.
//
// Extension is atomic from the caller's perspective: the arena extension
// is the only fallible step and it happens before any metadata is written,
// so a failure leaves the heap exactly as it was.
func (h *Heap) extendHeap(size uint64) (uint64, error) {
	size = word.AlignUp(size)

	oldBrk, err := h.ar.Extend(size)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNoSpace, err)
	}
	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(size)

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[GROW] #%d: +%d bytes (heap now %d)\n",
			h.stats.GrowCalls, size, h.ar.Len())
	}

	// The old epilogue word becomes the new block's header. Its
	// previous-allocated bit carries over: the block that ended the heap
	// before the extension is unchanged.
	off := oldBrk - word.Size
	prevAlloc := word.PrevAlloc(word.Load(h.buf(), off))
	h.writeBlock(off, size, false, prevAlloc)
	h.insertFree(off)

	// Fresh epilogue at the new heap end. Its previous block is the free
	// block just written.
	h.setHeader(h.epilogue(), word.Pack(0, true, false))

	return h.coalesceBlock(off), nil
}
