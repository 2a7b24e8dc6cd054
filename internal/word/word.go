package word

import "encoding/binary"

const (
	// Size is the width of a header, footer, or link word in bytes.
	Size = 8

	// Alignment is the payload alignment guarantee. Block sizes are always
	// multiples of Alignment, which is what frees the low 4 header bits.
	Alignment = 16

	// MinBlockSize is the smallest legal block: one header word plus one
	// Alignment-granule payload slot shared with the successor link.
	MinBlockSize = 16
)

const (
	allocMask     = 0x1
	prevAllocMask = 0x2
	miniMask      = 0x4
	sizeMask      = ^uint64(0xF)
)

// Pack builds a header (or footer) word from a size and status flags.
// The mini bit is derived from the size, never passed in.
func Pack(size uint64, alloc, prevAlloc bool) uint64 {
	w := size
	if alloc {
		w |= allocMask
	}
	if prevAlloc {
		w |= prevAllocMask
	}
	if size == MinBlockSize {
		w |= miniMask
	}
	return w
}

// BlockSize extracts the block size from a packed word. Mini words report
// MinBlockSize regardless of the size bits, so a mini block's successor
// link overwriting the size field can never corrupt size queries.
func BlockSize(w uint64) uint64 {
	if Mini(w) {
		return MinBlockSize
	}
	return w & sizeMask
}

// RawSize extracts the size bits without the mini-block override. Used only
// by the prologue/epilogue checks, where a zero size is meaningful.
func RawSize(w uint64) uint64 {
	return w & sizeMask
}

// Alloc reports whether the word marks its block allocated.
func Alloc(w uint64) bool {
	return w&allocMask != 0
}

// PrevAlloc reports whether the word marks the preceding block allocated.
func PrevAlloc(w uint64) bool {
	return w&prevAllocMask != 0
}

// Mini reports whether the word belongs to a minimum-size block.
func Mini(w uint64) bool {
	return w&miniMask != 0
}

// TagMini returns v with the mini bit set. Free-list successor links of
// mini blocks are tagged so the word doubles as a backward-traversal
// marker: with no footer, the link word is what the next block reads when
// looking for its predecessor's boundary tag.
func TagMini(v uint64) uint64 {
	return v | miniMask
}

// SetPrevAlloc returns w with the previous-allocated bit forced to prevAlloc.
func SetPrevAlloc(w uint64, prevAlloc bool) uint64 {
	if prevAlloc {
		return w | prevAllocMask
	}
	return w &^ prevAllocMask
}

// Load reads the little-endian word at off.
func Load(b []byte, off uint64) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+Size])
}

// Store writes v as a little-endian word at off.
func Store(b []byte, off uint64, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+Size], v)
}
