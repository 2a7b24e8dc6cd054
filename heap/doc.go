// Package heap implements a general-purpose dynamic memory allocator over a
// grow-only byte arena: malloc, free, realloc, and calloc on top of a raw
// sbrk-style extension primitive.
//
// # Overview
//
// The heap is one contiguous region that begins with a zero-size allocated
// prologue word and ends with a zero-size allocated epilogue word, relocated
// on every extension. Between the sentinels lives an implicit list of
// variable-size blocks, walkable by address through the size field packed
// into each block's header. Layered on top is the explicit free structure:
// 15 segregated free lists bucketed by power-of-two size class, used to find
// a fit in near-constant time instead of scanning the whole heap.
//
// # Block layout
//
// Every block starts with one packed header word (see internal/word).
// Allocated blocks carry no footer; the user payload begins immediately
// after the header. Free blocks larger than the minimum carry successor and
// predecessor links in the payload area plus a footer mirroring the header,
// enabling backward traversal. Free blocks of exactly the minimum size
// ("mini blocks") store only a successor link: they trade O(1) list removal
// for one saved word, with the predecessor reconstructed by scanning the
// mini bucket from its root.
//
// # Allocation
//
// A request rounds up to an aligned block size, searches its home bucket
// with a bounded best-fit lookahead (falling back to the head of the first
// non-empty larger bucket), extends the heap when nothing fits, splits off
// any remainder large enough to form a valid block, and propagates the
// previous-block-allocated bit to the successor. Freeing reverses this and
// immediately coalesces with free neighbors, so no two adjacent blocks are
// ever both free.
//
// # Pointers
//
// Allocations are identified by Ptr values: payload offsets into the arena,
// always 16-byte aligned, with 0 meaning "no allocation". All block
// arithmetic is offset arithmetic bounds-checked against the arena, never
// raw address casts.
//
// # Thread safety
//
// A Heap is not safe for concurrent use. Operations freely leave the heap
// transiently inconsistent between sub-steps, so callers that need
// concurrency must wrap every public operation in one external critical
// section.
//
// # Diagnostics
//
// Check walks both the implicit list and every bucket, validating the full
// invariant set and cross-checking the two views. With Config.CheckEvery
// set, every public operation brackets itself with Check and aborts loudly
// on the first violation. Setting the HEAPKIT_LOG_ALLOC environment
// variable logs allocation traffic to stderr.
package heap
