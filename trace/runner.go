package trace

import (
	"fmt"

	"github.com/heaplab/heapkit/heap"
)

// Result summarizes a replayed trace.
type Result struct {
	Ops         int        // operations executed
	HeapSize    uint64     // final heap size in bytes
	PeakLive    uint64     // high-water mark of requested live bytes
	Utilization float64    // PeakLive / HeapSize
	Stats       heap.Stats // allocator counters after the run
}

// slot tracks one live allocation during a replay.
type slot struct {
	p    heap.Ptr
	size uint64 // requested size, not the block's padded payload
}

// Run replays tr against h, verifying payload integrity along the way.
// Every allocation is filled with a pattern derived from its id, checked
// before the block is freed or resized; a mismatch means two allocations
// overlapped or a block was corrupted, and aborts the run with an error
// naming the operation index.
func Run(h *heap.Heap, tr *Trace) (*Result, error) {
	slots := make([]slot, tr.IDs)
	var live, peak uint64

	for i, op := range tr.Ops {
		s := &slots[op.ID]
		switch op.Kind {
		case OpAlloc:
			if s.p != 0 {
				return nil, fmt.Errorf("op %d: alloc of live id %d", i, op.ID)
			}
			p, err := h.Malloc(op.Size)
			if err != nil {
				return nil, fmt.Errorf("op %d: malloc %d: %w", i, op.Size, err)
			}
			if op.Size > 0 && p == 0 {
				return nil, fmt.Errorf("op %d: malloc %d returned no allocation", i, op.Size)
			}
			fill(h, p, op.Size, op.ID)
			s.p, s.size = p, op.Size
			live += op.Size

		case OpRealloc:
			if err := verify(h, s.p, s.size, op.ID); err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
			p, err := h.Realloc(s.p, op.Size)
			if err != nil {
				return nil, fmt.Errorf("op %d: realloc %d: %w", i, op.Size, err)
			}
			// The shared prefix must have been copied; verify then repaint
			// the whole new payload.
			n := min(s.size, op.Size)
			if err := verify(h, p, n, op.ID); err != nil {
				return nil, fmt.Errorf("op %d: after realloc: %w", i, err)
			}
			fill(h, p, op.Size, op.ID)
			live = live - s.size + op.Size
			s.p, s.size = p, op.Size

		case OpFree:
			if err := verify(h, s.p, s.size, op.ID); err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
			if err := h.Free(s.p); err != nil {
				return nil, fmt.Errorf("op %d: free id %d: %w", i, op.ID, err)
			}
			live -= s.size
			s.p, s.size = 0, 0
		}

		if live > peak {
			peak = live
		}
	}

	res := &Result{
		Ops:      len(tr.Ops),
		HeapSize: h.HeapSize(),
		PeakLive: peak,
		Stats:    h.Stats(),
	}
	if res.HeapSize > 0 {
		res.Utilization = float64(res.PeakLive) / float64(res.HeapSize)
	}
	return res, nil
}

// fill paints an allocation with its id-derived pattern.
func fill(h *heap.Heap, p heap.Ptr, size uint64, id int) {
	if p == 0 || size == 0 {
		return
	}
	b := h.Bytes(p)[:size]
	for i := range b {
		b[i] = pattern(id, i)
	}
}

// verify checks an allocation still holds its pattern.
func verify(h *heap.Heap, p heap.Ptr, size uint64, id int) error {
	if p == 0 || size == 0 {
		return nil
	}
	b := h.Bytes(p)[:size]
	for i := range b {
		if b[i] != pattern(id, i) {
			return fmt.Errorf("payload of id %d corrupted at byte %d", id, i)
		}
	}
	return nil
}

func pattern(id, i int) byte {
	return byte(id*31 + i)
}
