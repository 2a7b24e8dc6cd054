package word

// Alignment utilities. Block sizes and heap extensions must land on
// 16-byte boundaries so the low header bits stay free for flags.

// AlignUp returns n rounded up to the next multiple of Alignment.
//
// Example:
//
//	AlignUp(1)  = 16
//	AlignUp(16) = 16
//	AlignUp(17) = 32
func AlignUp(n uint64) uint64 {
	return (n + Alignment - 1) &^ uint64(Alignment-1)
}

// Aligned reports whether n is a multiple of Alignment.
func Aligned(n uint64) bool {
	return n&(Alignment-1) == 0
}

// MulOverflows reports whether a*b overflows uint64. Calloc must reject the
// overflowing case: silent wraparound would under-allocate.
func MulOverflows(a, b uint64) bool {
	return a != 0 && b > ^uint64(0)/a
}
