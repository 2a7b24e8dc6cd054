//go:build !unix

package arena

// reserve allocates the region as a plain slice when mmap is unavailable.
func reserve(capacity uint64) ([]byte, func() error, error) {
	return make([]byte, capacity), func() error { return nil }, nil
}
