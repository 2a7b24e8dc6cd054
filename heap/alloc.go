package heap

import (
	"fmt"
	"os"

	"github.com/heaplab/heapkit/internal/word"
)

// adjustSize converts a requested payload size to the block size actually
// carved out: header overhead added, rounded up to alignment, floored at
// the minimum block size.
func adjustSize(size uint64) uint64 {
	asize := word.AlignUp(size + word.Size)
	if asize < word.MinBlockSize {
		asize = word.MinBlockSize
	}
	return asize
}

// Malloc allocates size bytes and returns the payload pointer, 16-byte
// aligned. A zero size returns 0 with no error and no heap change. The
// heap is initialized lazily on first use. Fails when the arena is
// exhausted or the size is too large to represent as a block.
func (h *Heap) Malloc(size uint64) (Ptr, error) {
	if !h.initialized {
		if err := h.Init(); err != nil {
			return 0, err
		}
	}
	h.debugCheck("malloc enter")
	defer h.debugCheck("malloc exit")
	h.stats.MallocCalls++

	if size == 0 {
		return 0, nil
	}
	// adjustSize would wrap beyond this.
	if size > ^uint64(0)-(word.Alignment+word.Size-1) {
		return 0, fmt.Errorf("%w: %d", ErrOverflow, size)
	}

	asize := adjustSize(size)

	blk := h.findFit(asize)
	if blk == 0 {
		extend := asize
		if extend < h.cfg.ChunkSize {
			extend = h.cfg.ChunkSize
		}
		var err error
		blk, err = h.extendHeap(extend)
		if err != nil {
			return 0, err
		}
	}

	h.removeFree(blk)

	// A free block's predecessor is always allocated, so the placed
	// block's prev-alloc bit is set unconditionally.
	h.writeBlock(blk, h.blockSize(blk), true, true)
	h.splitBlock(blk, asize)
	h.updateNext(blk, true)

	h.noteAlloc(h.blockSize(blk) - word.Size)
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] %d bytes -> block %#x (size %d)\n",
			size, blk, h.blockSize(blk))
	}
	return blk + word.Size, nil
}

// splitBlock carves trailing free space off a freshly placed block when the
// remainder is large enough to form a valid block; smaller remainders stay
// as internal padding. The remainder is written free with prev-alloc set
// and pushed onto its bucket.
func (h *Heap) splitBlock(blk, asize uint64) {
	size := h.blockSize(blk)
	if size-asize < word.MinBlockSize {
		return
	}

	h.writeBlock(blk, asize, true, true)
	rem := blk + asize
	h.writeBlock(rem, size-asize, false, true)
	h.insertFree(rem)
	h.stats.SplitCount++
}

// Free releases an allocation. Freeing 0 is a no-op. The pointer must come
// from a live Malloc/Realloc/Calloc result: beyond a bounds test, misuse
// (double free, foreign pointer) is not defended against outside
// CheckEvery mode, matching raw allocator semantics.
func (h *Heap) Free(p Ptr) error {
	if p == 0 {
		return nil
	}
	if p < 2*word.Size || p > h.ar.Len() {
		return fmt.Errorf("%w: %#x", ErrBadPtr, p)
	}
	h.debugCheck("free enter")
	defer h.debugCheck("free exit")
	h.stats.FreeCalls++

	blk := p - word.Size
	size := h.blockSize(blk)
	prevAlloc := word.PrevAlloc(h.header(blk))

	h.writeBlock(blk, size, false, prevAlloc)
	h.insertFree(blk)

	blk = h.coalesceBlock(blk)
	h.updateNext(blk, false)

	h.noteFree(size - word.Size)
	return nil
}

// Realloc resizes an allocation by allocating fresh space, copying
// min(old payload, size) bytes, and freeing the old block. A zero size
// frees p and returns 0; a zero p behaves as Malloc. Both cases are
// decided before any header is read. On allocation failure the original
// block is left untouched.
func (h *Heap) Realloc(p Ptr, size uint64) (Ptr, error) {
	if size == 0 {
		err := h.Free(p)
		return 0, err
	}
	if p == 0 {
		return h.Malloc(size)
	}
	h.stats.ReallocCalls++

	newP, err := h.Malloc(size)
	if err != nil {
		return 0, err
	}

	n := h.PayloadSize(p)
	if size < n {
		n = size
	}
	copy(h.Bytes(newP)[:n], h.Bytes(p)[:n])

	if err := h.Free(p); err != nil {
		return 0, err
	}
	return newP, nil
}

// Calloc allocates count*elemSize bytes and zero-fills the payload. A zero
// count or an overflowing product yields no allocation; the overflow check
// is mandatory, since silent wraparound would under-allocate.
func (h *Heap) Calloc(count, elemSize uint64) (Ptr, error) {
	if count == 0 {
		return 0, nil
	}
	if word.MulOverflows(count, elemSize) {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, count, elemSize)
	}
	h.stats.CallocCalls++

	p, err := h.Malloc(count * elemSize)
	if err != nil || p == 0 {
		return 0, err
	}

	b := h.Bytes(p)[:count*elemSize]
	for i := range b {
		b[i] = 0
	}
	return p, nil
}

// Bytes returns the full payload region of a live allocation. The slice
// stays valid until the block is freed. Returns nil for p == 0.
func (h *Heap) Bytes(p Ptr) []byte {
	if p == 0 {
		return nil
	}
	blk := p - word.Size
	return h.buf()[p : blk+h.blockSize(blk)]
}

// PayloadSize returns the usable payload size of a live allocation, which
// may exceed the requested size due to alignment and splitting limits.
func (h *Heap) PayloadSize(p Ptr) uint64 {
	if p == 0 {
		return 0
	}
	return h.blockSize(p-word.Size) - word.Size
}

// debugCheck brackets public operations with a full consistency check when
// CheckEvery is set. A violation is fatal: the heap is dumped to stderr
// and the error escapes as a panic, localizing the faulty call.
func (h *Heap) debugCheck(label string) {
	if !h.cfg.CheckEvery || !h.initialized {
		return
	}
	if err := h.Check(label); err != nil {
		h.Dump(os.Stderr)
		panic(err)
	}
}
