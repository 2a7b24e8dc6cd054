package heap

// Stats holds allocator counters for tests and instrumentation.
type Stats struct {
	MallocCalls  int // Total Malloc() calls
	FreeCalls    int // Total Free() calls
	ReallocCalls int // Total Realloc() calls
	CallocCalls  int // Total Calloc() calls

	GrowCalls int   // Number of heap extensions
	GrowBytes int64 // Total bytes added by extension

	SplitCount   int // Blocks split during placement
	CoalesceNext int // Merges with the following block only
	CoalescePrev int // Merges with the preceding block only
	CoalesceBoth int // Merges with both neighbors

	BytesAllocated int64 // Total payload bytes handed out
	BytesFreed     int64 // Total payload bytes released

	LivePayload uint64 // Payload bytes currently allocated
	PeakPayload uint64 // High-water mark of LivePayload
}

// Stats returns a snapshot of the allocator's counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

func (h *Heap) noteAlloc(payload uint64) {
	h.stats.BytesAllocated += int64(payload)
	h.stats.LivePayload += payload
	if h.stats.LivePayload > h.stats.PeakPayload {
		h.stats.PeakPayload = h.stats.LivePayload
	}
}

func (h *Heap) noteFree(payload uint64) {
	h.stats.BytesFreed += int64(payload)
	h.stats.LivePayload -= payload
}
