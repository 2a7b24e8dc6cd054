package heap

import (
	"fmt"
	"os"

	"github.com/heaplab/heapkit/internal/arena"
	"github.com/heaplab/heapkit/internal/word"
)

// Ptr identifies an allocation: the payload's offset into the arena.
// 0 means "no allocation"; a real payload offset is always >= 16.
type Ptr = uint64

// bucketCount is the number of segregated free lists. Bucket 0 is reserved
// for minimum-size (mini) blocks; buckets above it cover power-of-two size
// classes, with the last bucket absorbing everything larger.
const bucketCount = 15

// Runtime debug flag for allocation logging.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Heap is one allocator instance: the arena it manages plus the segregated
// free-list roots. Multiple independent heaps may coexist, each over its
// own arena.
type Heap struct {
	ar  *arena.Arena
	cfg Config

	// roots holds the head block (header offset) of each bucket; 0 = empty.
	roots [bucketCount]uint64

	// heapStart is the offset of the first block header, one word past the
	// prologue. Zero until Init establishes the sentinels.
	heapStart uint64

	initialized bool
	stats       Stats
}

// New creates a heap over ar. The arena is not touched until Init, which
// Malloc also performs lazily on first use.
func New(ar *arena.Arena, cfg *Config) *Heap {
	return &Heap{ar: ar, cfg: cfg.withDefaults()}
}

// Init establishes the prologue and epilogue sentinels and performs the
// first extension. The arena must be fresh: offsets handed out as Ptr
// values are relative to the arena base.
func (h *Heap) Init() error {
	if h.ar.Len() != 0 {
		return ErrArenaInUse
	}

	base, err := h.ar.Extend(2 * word.Size)
	if err != nil {
		return fmt.Errorf("heap: init: %w", err)
	}

	h.roots = [bucketCount]uint64{}
	h.stats = Stats{}

	b := h.buf()
	word.Store(b, base, word.Pack(0, true, true))           // prologue
	word.Store(b, base+word.Size, word.Pack(0, true, true)) // epilogue, relocated by extendHeap
	h.heapStart = base + word.Size

	if _, err := h.extendHeap(h.cfg.ChunkSize); err != nil {
		return err
	}
	h.initialized = true
	return nil
}

// HeapSize returns the current heap size in bytes, sentinels included.
func (h *Heap) HeapSize() uint64 {
	return h.ar.Len()
}

// buf returns the live arena bytes. The base is stable across extensions,
// only the length grows, so cached offsets stay valid.
func (h *Heap) buf() []byte {
	return h.ar.Bytes()
}

// epilogue returns the offset of the epilogue header, the last word of the
// heap.
func (h *Heap) epilogue() uint64 {
	return h.ar.Len() - word.Size
}

func (h *Heap) header(off uint64) uint64 {
	return word.Load(h.buf(), off)
}

func (h *Heap) setHeader(off, w uint64) {
	word.Store(h.buf(), off, w)
}

func (h *Heap) blockSize(off uint64) uint64 {
	return word.BlockSize(h.header(off))
}

// writeBlock writes a block's header at off, and its footer too when the
// block is free and not mini. Mini and allocated blocks carry no footer.
func (h *Heap) writeBlock(off, size uint64, alloc, prevAlloc bool) {
	w := word.Pack(size, alloc, prevAlloc)
	h.setHeader(off, w)
	if !alloc && size != word.MinBlockSize {
		word.Store(h.buf(), off+size-word.Size, w)
	}
}

// writeFooter mirrors the current header into the footer word. Contract:
// the block is free and not mini.
func (h *Heap) writeFooter(off uint64) {
	w := h.header(off)
	word.Store(h.buf(), off+word.BlockSize(w)-word.Size, w)
}

// nextBlock returns the header offset of the following block in the
// implicit list. Contract: off is not the epilogue.
func (h *Heap) nextBlock(off uint64) uint64 {
	return off + h.blockSize(off)
}

// prevBlock returns the header offset of the preceding block, or 0 when
// off is the first block in the heap. It reads the word immediately before
// the header: a mini footer-less block is deduced from the mini bit, the
// prologue from a zero size. Contract: the preceding block is free (the
// previous-allocated bit is clear), otherwise no footer exists to read.
func (h *Heap) prevBlock(off uint64) uint64 {
	footer := word.Load(h.buf(), off-word.Size)
	if word.Mini(footer) {
		return off - word.MinBlockSize
	}
	size := word.RawSize(footer)
	if size == 0 {
		return 0
	}
	return off - size
}

// updateNext propagates a block's new allocation state: the following
// block's previous-allocated bit is refreshed, and a freed non-mini block
// gets its footer rewritten so backward traversal sees the final header.
// Propagation is not optional; a stale bit corrupts future coalescing.
func (h *Heap) updateNext(off uint64, alloc bool) {
	next := h.nextBlock(off)
	h.setHeader(next, word.SetPrevAlloc(h.header(next), alloc))
	if !alloc && !word.Mini(h.header(off)) {
		h.writeFooter(off)
	}
}
