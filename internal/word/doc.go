// Package word implements the boundary-tag codec used by the allocator.
//
// Every block in the heap begins with a single 64-bit header word that
// packs the block size together with three status flags. Free blocks that
// are larger than the minimum size also carry a footer word mirroring the
// header, so the previous block's boundaries can be found by reading one
// word backward.
//
// # Word layout
//
// The heap is 16-byte aligned, so the low 4 bits of every block size are
// zero and are reused for flags:
//
//	bit 0: allocated
//	bit 1: previous block allocated
//	bit 2: mini block (size == MinBlockSize)
//	bits 4..63: block size
//
// The mini bit is set automatically by Pack whenever the size equals
// MinBlockSize, including for allocated blocks. Mini blocks have a
// permanently fixed size, and the bit is what disambiguates their reduced
// layout (no footer, no predecessor link) once they are freed.
//
// Words are stored little-endian in the arena; Load and Store are the only
// accessors, mirroring the fixed-width helpers in encoding/binary.
package word
