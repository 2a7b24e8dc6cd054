// Package arena provides the allocator's only external collaborator: a
// contiguous, grow-only byte region with an sbrk-style extension primitive.
//
// An Arena reserves its full capacity up front and hands it out a chunk at
// a time through Extend, which returns the previous break offset. Repeated
// calls yield one ever-growing contiguous region; when the reservation is
// exhausted, Extend fails cleanly without disturbing any byte already
// handed out. The arena never shrinks and never returns memory to the
// operating system.
//
// On unix platforms the reservation is an anonymous private mapping, so
// untouched pages cost no committed memory. Elsewhere a plain slice backs
// the region.
package arena
