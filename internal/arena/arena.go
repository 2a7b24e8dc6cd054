package arena

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the reservation size used by New when the caller
// passes 0. Large enough for any realistic allocator workload while
// remaining a cheap reservation on unix (pages commit on first touch).
const DefaultCapacity = 1 << 30 // 1GB

// ErrExhausted indicates the reservation is spent and the arena cannot grow.
var ErrExhausted = errors.New("arena: reservation exhausted")

// Arena is a contiguous byte region that only grows. The region between
// offset 0 and the current break is live; everything above the break is
// reserved but unused.
type Arena struct {
	data    []byte // full reservation, len = capacity
	brk     uint64 // current break offset
	release func() error
}

// New reserves an arena of the given capacity (DefaultCapacity if 0).
func New(capacity uint64) (*Arena, error) {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	data, release, err := reserve(capacity)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", capacity, err)
	}
	return &Arena{data: data, release: release}, nil
}

// Extend moves the break up by n bytes and returns the old break offset.
// Fails with ErrExhausted when the reservation cannot cover the request;
// on failure no arena state changes.
func (a *Arena) Extend(n uint64) (uint64, error) {
	if n > uint64(len(a.data))-a.brk {
		return 0, fmt.Errorf("%w (brk=%d, cap=%d, need=%d)", ErrExhausted, a.brk, len(a.data), n)
	}
	old := a.brk
	a.brk += n
	return old, nil
}

// Bytes returns the live region, offset 0 up to the current break. The
// slice is invalidated by the next Extend only in length, never in base:
// offsets into it remain stable for the arena's lifetime.
func (a *Arena) Bytes() []byte {
	return a.data[:a.brk]
}

// Len returns the current break offset.
func (a *Arena) Len() uint64 {
	return a.brk
}

// Cap returns the total reservation size.
func (a *Arena) Cap() uint64 {
	return uint64(len(a.data))
}

// Close releases the reservation. The arena must not be used afterward.
func (a *Arena) Close() error {
	if a.release == nil {
		return nil
	}
	err := a.release()
	a.release = nil
	a.data = nil
	a.brk = 0
	return err
}
