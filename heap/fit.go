package heap

// findFit returns the header offset of a free block of at least asize
// bytes, or 0 when no bucket holds one.
//
// The home bucket is searched with a bounded best-fit lookahead: among the
// candidates inspected, the smallest block that fits is tracked, and the
// search ends once a fit has been seen and FitLookahead further candidates
// have been inspected. This caps search time at the cost of occasionally
// choosing a larger-than-minimal block; a negative FitLookahead degrades
// to pure first fit. When the home bucket yields nothing, the head of the
// first non-empty larger bucket is returned unconditionally: any block
// there is at least a size class too big.
func (h *Heap) findFit(asize uint64) uint64 {
	var best uint64
	var bestSize uint64
	checked := 0

	home := bucketIndex(asize)
	for blk := h.roots[home]; blk != 0; blk = h.succ(blk) {
		if size := h.blockSize(blk); size >= asize {
			if best == 0 || size < bestSize {
				best = blk
				bestSize = size
			}
			if checked > h.cfg.FitLookahead {
				return best
			}
		}
		checked++
	}
	if best != 0 {
		return best
	}

	for idx := home + 1; idx < bucketCount; idx++ {
		if h.roots[idx] != 0 {
			return h.roots[idx]
		}
	}
	return 0
}
