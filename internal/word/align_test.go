package word

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignUp(t *testing.T) {
	cases := map[uint64]uint64{
		0:  0,
		1:  16,
		15: 16,
		16: 16,
		17: 32,
		31: 32,
		32: 32,
	}
	for in, want := range cases {
		assert.Equal(t, want, AlignUp(in), "AlignUp(%d)", in)
	}
}

func TestAligned(t *testing.T) {
	assert.True(t, Aligned(0))
	assert.True(t, Aligned(16))
	assert.True(t, Aligned(4096))
	assert.False(t, Aligned(8))
	assert.False(t, Aligned(17))
}

func TestMulOverflows(t *testing.T) {
	assert.False(t, MulOverflows(0, math.MaxUint64))
	assert.False(t, MulOverflows(1, math.MaxUint64))
	assert.False(t, MulOverflows(2, math.MaxUint64/2))
	assert.True(t, MulOverflows(2, math.MaxUint64/2+1))
	assert.True(t, MulOverflows(math.MaxUint64, math.MaxUint64))
	assert.True(t, MulOverflows(1<<32, 1<<32))
}
