package heap

import "github.com/heaplab/heapkit/internal/word"

// coalesceBlock merges a freshly freed block with whichever neighbors are
// free, restoring the invariant that no two adjacent blocks are free. All
// participating blocks are first unlinked from the free structure, then a
// single block spanning them is written at the lowest address and
// reinserted. Returns the (possibly relocated) merged block's offset.
//
// The previous block's status comes from the header's previous-allocated
// bit, never from a footer read: allocated blocks have no footer.
func (h *Heap) coalesceBlock(off uint64) uint64 {
	prevAlloc := word.PrevAlloc(h.header(off))
	next := h.nextBlock(off)
	nextAlloc := word.Alloc(h.header(next))

	switch {
	case !prevAlloc && !nextAlloc:
		prev := h.prevBlock(off)
		size := h.blockSize(prev) + h.blockSize(off) + h.blockSize(next)

		h.removeFree(prev)
		h.removeFree(next)
		h.removeFree(off)

		// The block before a free block is always allocated, so the merged
		// header keeps prev-alloc set.
		h.writeBlock(prev, size, false, true)
		h.insertFree(prev)
		h.stats.CoalesceBoth++
		return prev

	case !nextAlloc:
		size := h.blockSize(off) + h.blockSize(next)

		h.removeFree(next)
		h.removeFree(off)

		h.writeBlock(off, size, false, true)
		h.insertFree(off)
		h.stats.CoalesceNext++
		return off

	case !prevAlloc:
		prev := h.prevBlock(off)
		size := h.blockSize(prev) + h.blockSize(off)

		h.removeFree(prev)
		h.removeFree(off)

		h.writeBlock(prev, size, false, true)
		h.insertFree(prev)
		h.stats.CoalescePrev++
		return prev
	}

	return off
}
