package expectand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devmotion/mcmcdiag/chains"
)

func arrayOf(t *testing.T, vals []float64, draws, nchains int) *chains.Array {
	t.Helper()
	arr, err := chains.FromValues(vals, draws, nchains, 1)
	require.NoError(t, err)
	return arr
}

func TestQuantileInterpolation(t *testing.T) {
	vals := []float64{4, 1, 3, 2}
	assert.InDelta(t, 2.5, quantile(vals, 0.5), 1e-12)
	assert.InDelta(t, 1, quantile(vals, 0), 1e-12)
	assert.InDelta(t, 4, quantile(vals, 1), 1e-12)
	assert.InDelta(t, 1.75, quantile(vals, 0.25), 1e-12)
	// input order untouched
	assert.Equal(t, []float64{4, 1, 3, 2}, vals)
}

func TestMeanIsIdentity(t *testing.T) {
	src := arrayOf(t, []float64{1, 2, 3, 4, 5, 6}, 3, 2)
	src.SetMissing(2, 1, 0)

	dst, err := Apply(src, Estimator{Kind: Mean})
	require.NoError(t, err)

	assert.Equal(t, 2.0, dst.At(1, 0, 0))
	assert.Equal(t, 5.0, dst.At(1, 1, 0))
	// per-cell missing marks carry through
	assert.True(t, dst.IsMissing(2, 1, 0))
	assert.False(t, dst.IsMissing(0, 0, 0))
}

func TestMedianIndicator(t *testing.T) {
	src := arrayOf(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5, 2)
	dst, err := Apply(src, Estimator{Kind: Median})
	require.NoError(t, err)

	// median 5.5: the lower half maps to 1, the upper half to 0
	out := dst.Param(0).Flatten(nil)
	sum := 0.0
	for i, v := range out {
		if v != 0 && v != 1 {
			t.Fatalf("indicator produced %v", v)
		}
		if i < 5 {
			assert.Equal(t, 1.0, v)
		} else {
			assert.Equal(t, 0.0, v)
		}
		sum += v
	}
	assert.Equal(t, 5.0, sum)
}

func TestStdTransform(t *testing.T) {
	src := arrayOf(t, []float64{1, 3, 5, 7}, 2, 2)
	dst, err := Apply(src, Estimator{Kind: Std})
	require.NoError(t, err)

	// global mean 4: squared deviations 9, 1, 1, 9
	assert.Equal(t, []float64{9, 1, 1, 9}, dst.Param(0).Flatten(nil))
}

func TestMADTransform(t *testing.T) {
	src := arrayOf(t, []float64{1, 2, 3, 4, 100, 200}, 3, 2)
	dst, err := Apply(src, Estimator{Kind: MAD})
	require.NoError(t, err)

	// median 3.5, folds {2.5, 1.5, 0.5, 0.5, 96.5, 196.5}, fold median
	// 2: folds at or below it map to 1
	assert.Equal(t, []float64{0, 1, 1, 1, 0, 0}, dst.Param(0).Flatten(nil))
}

func TestQuantileIndicator(t *testing.T) {
	src := arrayOf(t, []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, 10, 1)
	dst, err := Apply(src, Estimator{Kind: Quantile, Prob: 0.9})
	require.NoError(t, err)

	out := dst.Param(0).Flatten(nil)
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	// 0.9-quantile is 91: nine values at or below
	assert.Equal(t, 9.0, sum)
}

func TestSliceStatisticsNeedEveryCell(t *testing.T) {
	for _, e := range []Estimator{
		{Kind: Median},
		{Kind: Std},
		{Kind: MAD},
		{Kind: Quantile, Prob: 0.25},
	} {
		src := arrayOf(t, []float64{1, 2, 3, 4, 5, 6}, 3, 2)
		src.SetMissing(0, 1, 0)

		dst, err := Apply(src, e)
		require.NoError(t, err, e.Kind)
		for c := 0; c < 2; c++ {
			for d := 0; d < 3; d++ {
				assert.True(t, dst.IsMissing(d, c, 0), "%s (%d,%d)", e.Kind, d, c)
			}
		}
	}
}

func TestMissingParamDoesNotLeak(t *testing.T) {
	arr, err := chains.New(3, 2, 2)
	require.NoError(t, err)
	for c := 0; c < 2; c++ {
		for d := 0; d < 3; d++ {
			arr.Set(d, c, 0, float64(d+3*c))
			arr.Set(d, c, 1, float64(d*c)+1)
		}
	}
	arr.SetMissing(0, 0, 0)

	dst, err := Apply(arr, Estimator{Kind: Median})
	require.NoError(t, err)
	assert.True(t, dst.Param(0).HasMissing())
	assert.False(t, dst.Param(1).HasMissing())
}

func TestUnsupportedEstimator(t *testing.T) {
	src := arrayOf(t, []float64{1, 2}, 2, 1)
	_, err := Apply(src, Estimator{Kind: Kind(99)})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "kind(99)")
}
