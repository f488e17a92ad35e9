package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadShape(t *testing.T) {
	for _, dims := range [][3]int{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-2, 4, 1}} {
		_, err := New(dims[0], dims[1], dims[2])
		assert.ErrorIs(t, err, ErrShape)
	}
}

func TestFromValuesLayout(t *testing.T) {
	// draw varies fastest, then chain, then parameter
	vals := []float64{
		1, 2, 3, // param 0, chain 0
		4, 5, 6, // param 0, chain 1
		7, 8, 9, // param 1, chain 0
		10, 11, 12, // param 1, chain 1
	}
	a, err := FromValues(vals, 3, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 2.0, a.At(1, 0, 0))
	assert.Equal(t, 6.0, a.At(2, 1, 0))
	assert.Equal(t, 7.0, a.At(0, 0, 1))
	assert.Equal(t, 12.0, a.At(2, 1, 1))
}

func TestFromValuesLengthMismatch(t *testing.T) {
	_, err := FromValues([]float64{1, 2, 3}, 2, 2, 1)
	assert.ErrorIs(t, err, ErrShape)
}

func TestMissingMask(t *testing.T) {
	a, err := New(4, 2, 2)
	require.NoError(t, err)

	a.SetMissing(1, 0, 0)
	assert.True(t, a.IsMissing(1, 0, 0))
	assert.False(t, a.IsMissing(1, 1, 0))

	s := a.Param(0)
	assert.True(t, s.HasMissing())
	assert.False(t, a.Param(1).HasMissing())

	// Set clears the mark
	a.Set(1, 0, 0, 3.5)
	assert.False(t, a.IsMissing(1, 0, 0))
	assert.False(t, s.HasMissing())
}

func TestSetParamMissing(t *testing.T) {
	a, _ := New(3, 2, 2)
	a.SetParamMissing(1)

	assert.False(t, a.Param(0).HasMissing())
	for c := 0; c < 2; c++ {
		for d := 0; d < 3; d++ {
			assert.True(t, a.IsMissing(d, c, 1))
		}
	}
}

func TestSliceFlatten(t *testing.T) {
	a, _ := FromValues([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 2, 2, 2)

	assert.Equal(t, []float64{1, 2, 3, 4}, a.Param(0).Flatten(nil))
	assert.Equal(t, []float64{5, 6, 7, 8}, a.Param(1).Flatten(nil))
}

func TestLike(t *testing.T) {
	a, _ := New(5, 3, 2)
	a.Set(0, 0, 0, 42)
	a.SetMissing(1, 1, 1)

	b := Like(a)
	assert.Equal(t, 5, b.Draws())
	assert.Equal(t, 3, b.Chains())
	assert.Equal(t, 2, b.Params())
	assert.Equal(t, 0.0, b.At(0, 0, 0))
	assert.False(t, b.IsMissing(1, 1, 1))
}

func TestValue(t *testing.T) {
	assert.False(t, Real(1.5).Missing)
	assert.Equal(t, 1.5, Real(1.5).Float64)
	assert.True(t, None().Missing)
}
