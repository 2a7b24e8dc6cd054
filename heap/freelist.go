package heap

import (
	"math/bits"

	"github.com/heaplab/heapkit/internal/word"
)

// Segregated free-list management. Free blocks link into one of the
// bucketed lists through offset-valued successor/predecessor fields stored
// in the payload area (0 = list end). Mini blocks keep only the successor;
// their predecessor is reconstructed by scanning the mini bucket from its
// root, an accepted O(k) trade for the saved word.

// bucketIndex maps a block size to its bucket. All minimum-size blocks land
// in bucket 0 regardless of the power-of-two formula; the last bucket
// absorbs every size beyond the covered classes.
func bucketIndex(size uint64) int {
	if size <= word.MinBlockSize {
		return 0
	}
	idx := bits.Len64(size>>4) - 1 // floor(log2(size/16))
	if idx >= bucketCount {
		idx = bucketCount - 1
	}
	return idx
}

// succ returns a free block's successor link. Link words keep their low
// bits masked off: header offsets are 8-aligned, and a mini block's link
// word carries the mini flag (see setSucc).
func (h *Heap) succ(off uint64) uint64 {
	return word.Load(h.buf(), off+word.Size) &^ 0x7
}

// setSucc stores a free block's successor link. For a mini block the link
// word doubles as the word immediately preceding the next block's header,
// where prevBlock expects to find a footer; tagging the link with the mini
// flag keeps the footer-less block discoverable backward.
func (h *Heap) setSucc(off, v uint64) {
	if word.Mini(h.header(off)) {
		v = word.TagMini(v)
	}
	word.Store(h.buf(), off+word.Size, v)
}

// pred returns a free block's predecessor in its list. Non-mini blocks
// store it; for a mini block the mini bucket is walked from the root until
// a block's successor equals off. Returns 0 for the list head.
func (h *Heap) pred(off uint64) uint64 {
	if !word.Mini(h.header(off)) {
		return word.Load(h.buf(), off+2*word.Size)
	}
	for cur := h.roots[0]; cur != 0; cur = h.succ(cur) {
		if h.succ(cur) == off {
			return cur
		}
	}
	return 0
}

// setPred records a free block's predecessor. Mini blocks have no
// predecessor field, so the write is dropped for them.
func (h *Heap) setPred(off, v uint64) {
	if word.Mini(h.header(off)) {
		return
	}
	word.Store(h.buf(), off+2*word.Size, v)
}

// insertFree pushes a free block onto the head of its bucket (LIFO).
func (h *Heap) insertFree(off uint64) {
	idx := bucketIndex(h.blockSize(off))
	head := h.roots[idx]

	h.setSucc(off, head)
	h.setPred(off, 0)
	if head != 0 {
		h.setPred(head, off)
	}
	h.roots[idx] = off
}

// removeFree unlinks a free block from its bucket, handling the sole,
// head, tail, and interior cases.
func (h *Heap) removeFree(off uint64) {
	idx := bucketIndex(h.blockSize(off))
	prev := h.pred(off)
	next := h.succ(off)

	switch {
	case prev == 0 && next == 0:
		h.roots[idx] = 0
	case next == 0:
		h.setSucc(prev, 0)
	case prev == 0:
		h.setPred(next, 0)
		h.roots[idx] = next
	default:
		h.setSucc(prev, next)
		h.setPred(next, prev)
	}
}
