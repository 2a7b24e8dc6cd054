package heap

// Config tunes allocator behavior. It is read once at construction;
// a nil Config selects DefaultConfig.
type Config struct {
	// ChunkSize is the minimum heap extension, in bytes. Requests larger
	// than ChunkSize extend by the request instead.
	ChunkSize uint64

	// FitLookahead bounds the best-fit search in a block's home bucket:
	// after this many candidates have been inspected past the first fit,
	// the smallest fit seen so far is taken. Caps worst-case search time
	// at the cost of occasionally choosing a larger-than-minimal block.
	// Zero selects the default; a negative value disables the lookahead
	// entirely, taking the first fitting candidate.
	FitLookahead int

	// CheckEvery brackets every public operation with a full consistency
	// check. A detected violation dumps the heap to stderr and panics.
	// Debug and test configurations only; the check walks the whole heap.
	CheckEvery bool
}

// DefaultConfig mirrors the allocator's original tuning.
var DefaultConfig = Config{
	ChunkSize:    4096,
	FitLookahead: 9,
}

func (c *Config) withDefaults() Config {
	if c == nil {
		return DefaultConfig
	}
	cfg := *c
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultConfig.ChunkSize
	}
	if cfg.FitLookahead == 0 {
		cfg.FitLookahead = DefaultConfig.FitLookahead
	}
	return cfg
}
