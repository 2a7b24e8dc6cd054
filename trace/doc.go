// Package trace parses and replays allocator workload traces.
//
// A trace file is a line-oriented text format: four integer header lines
// (suggested heap size, id-table size, operation count, weight) followed by
// one operation per line. Operations address allocations through small
// integer ids:
//
//	a <id> <size>   allocate <size> bytes as <id>
//	r <id> <size>   reallocate <id> to <size> bytes
//	f <id>          free <id>
//
// The runner replays a trace against a heap, filling every allocation with
// an id-derived byte pattern and verifying it before the block is resized
// or freed, so overlapping or corrupted allocations surface as errors. It
// reports peak utilization: the high-water mark of requested live bytes
// over the final heap size.
package trace
