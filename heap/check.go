package heap

import (
	"fmt"

	"github.com/heaplab/heapkit/internal/word"
)

// CheckError describes one invariant violation found by Check, with enough
// context to locate the offending block.
type CheckError struct {
	Label   string // caller-supplied context (which operation, which side)
	Message string
	Offset  uint64 // header offset of the offending block
	Size    uint64 // block size, when meaningful
	Bucket  int    // bucket index, -1 when not a bucket check
}

func (e *CheckError) Error() string {
	if e.Bucket >= 0 {
		return fmt.Sprintf("heap check (%s): %s (block %#x, size %d, bucket %d)",
			e.Label, e.Message, e.Offset, e.Size, e.Bucket)
	}
	return fmt.Sprintf("heap check (%s): %s (block %#x, size %d)",
		e.Label, e.Message, e.Offset, e.Size)
}

// Check walks the whole heap and validates every documented invariant:
// sentinel integrity, block alignment and containment, header/footer
// agreement on non-mini free blocks, the absence of adjacent free blocks,
// correct bucketing and link symmetry in every free list, and agreement
// between the implicit-list and bucket-walk views of the free set. It is
// diagnostic only and never runs on the allocation path unless CheckEvery
// is set. The label is echoed in any reported violation.
func (h *Heap) Check(label string) error {
	// No sentinels exist before Init; there is nothing to validate.
	if !h.initialized {
		return nil
	}

	fail := func(msg string, off, size uint64, bucket int) error {
		return &CheckError{Label: label, Message: msg, Offset: off, Size: size, Bucket: bucket}
	}

	b := h.buf()
	end := h.ar.Len()

	// Sentinels.
	prologue := word.Load(b, h.heapStart-word.Size)
	if word.RawSize(prologue) != 0 || !word.Alloc(prologue) || !word.PrevAlloc(prologue) {
		return fail("bad prologue word", h.heapStart-word.Size, word.RawSize(prologue), -1)
	}
	epilogue := word.Load(b, h.epilogue())
	if word.RawSize(epilogue) != 0 || !word.Alloc(epilogue) {
		return fail("bad epilogue word", h.epilogue(), word.RawSize(epilogue), -1)
	}

	// Implicit list walk.
	implicitFree := make(map[uint64]bool)
	prevAlloc := true // prologue is allocated
	for off := h.heapStart; off < h.epilogue(); off = h.nextBlock(off) {
		hdr := word.Load(b, off)
		size := word.BlockSize(hdr)

		if !word.Aligned(off + word.Size) {
			return fail("payload misaligned", off, size, -1)
		}
		if size < word.MinBlockSize || !word.Aligned(size) {
			return fail("illegal block size", off, size, -1)
		}
		if off+size > h.epilogue() {
			return fail("block extends past heap end", off, size, -1)
		}
		if word.Mini(hdr) != (size == word.MinBlockSize) {
			return fail("mini bit disagrees with size", off, size, -1)
		}
		if word.PrevAlloc(hdr) != prevAlloc {
			return fail("stale previous-allocated bit", off, size, -1)
		}
		if !word.Alloc(hdr) {
			if !prevAlloc {
				return fail("two adjacent free blocks", off, size, -1)
			}
			if !word.Mini(hdr) {
				footer := word.Load(b, off+size-word.Size)
				if footer != hdr {
					return fail("header and footer disagree", off, size, -1)
				}
			}
			implicitFree[off] = true
		}
		prevAlloc = word.Alloc(hdr)
	}
	if word.PrevAlloc(epilogue) != prevAlloc {
		return fail("epilogue previous-allocated bit stale", h.epilogue(), 0, -1)
	}

	// Bucket walks.
	listed := 0
	for idx := range h.roots {
		seen := make(map[uint64]bool)
		var prev uint64
		for blk := h.roots[idx]; blk != 0; blk = h.succ(blk) {
			if blk+word.Size > end {
				return fail("free-list block out of bounds", blk, 0, idx)
			}
			hdr := word.Load(b, blk)
			size := word.BlockSize(hdr)

			if word.Alloc(hdr) {
				return fail("allocated block on a free list", blk, size, idx)
			}
			if bucketIndex(size) != idx {
				return fail("block in wrong bucket", blk, size, idx)
			}
			if !implicitFree[blk] {
				return fail("listed block not free in implicit list", blk, size, idx)
			}
			if seen[blk] {
				return fail("free-list cycle", blk, size, idx)
			}
			seen[blk] = true

			// Mini blocks store no predecessor; link symmetry is only
			// checkable on doubly-linked buckets.
			if !word.Mini(hdr) {
				if h.pred(blk) != prev {
					return fail("predecessor link disagrees", blk, size, idx)
				}
			}
			prev = blk
			listed++
		}
	}

	if listed != len(implicitFree) {
		return fail(fmt.Sprintf("free counts disagree: buckets=%d implicit=%d",
			listed, len(implicitFree)), 0, 0, -1)
	}
	return nil
}
