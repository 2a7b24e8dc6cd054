package heap

import "errors"

var (
	// ErrNoSpace indicates that no free block was large enough and the
	// arena could not be extended.
	ErrNoSpace = errors.New("heap: out of space")

	// ErrBadPtr indicates a pointer outside the heap's bounds.
	ErrBadPtr = errors.New("heap: bad pointer")

	// ErrOverflow indicates a request whose size arithmetic overflows:
	// a calloc count*size product, or a malloc size too large to round
	// up to a block.
	ErrOverflow = errors.New("heap: allocation size overflows")

	// ErrArenaInUse indicates Init was called on a non-empty arena.
	ErrArenaInUse = errors.New("heap: arena already in use")
)
