package heap

import (
	"fmt"
	"io"

	"github.com/heaplab/heapkit/internal/word"
)

// Dump writes a block-by-block view of the heap: the implicit list first,
// then every non-empty bucket. Diagnostic output for debugging and for the
// fatal path of CheckEvery mode.
func (h *Heap) Dump(w io.Writer) {
	if !h.initialized {
		fmt.Fprintln(w, "heap: not initialized")
		return
	}

	fmt.Fprintf(w, "heap: %d bytes, %d grow calls\n", h.ar.Len(), h.stats.GrowCalls)
	fmt.Fprintln(w, "implicit list:")
	i := 0
	for off := h.heapStart; off < h.epilogue(); off = h.nextBlock(off) {
		h.dumpBlock(w, off, i)
		i++
	}

	fmt.Fprintln(w, "free lists:")
	for idx := range h.roots {
		if h.roots[idx] == 0 {
			continue
		}
		fmt.Fprintf(w, "  bucket %d:\n", idx)
		i = 0
		for blk := h.roots[idx]; blk != 0; blk = h.succ(blk) {
			h.dumpBlock(w, blk, i)
			i++
		}
	}
}

func (h *Heap) dumpBlock(w io.Writer, off uint64, i int) {
	hdr := h.header(off)
	state := "free"
	if word.Alloc(hdr) {
		state = "alloc"
	}
	fmt.Fprintf(w, "  #%d %#x size=%d %s prevAlloc=%v mini=%v",
		i, off, word.BlockSize(hdr), state, word.PrevAlloc(hdr), word.Mini(hdr))
	if !word.Alloc(hdr) {
		fmt.Fprintf(w, " succ=%#x pred=%#x", h.succ(off), h.pred(off))
	}
	fmt.Fprintln(w)
}
