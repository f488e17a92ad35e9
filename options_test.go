package mcmcdiag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedDefaults(t *testing.T) {
	o, err := Options{}.normalized()
	require.NoError(t, err)

	assert.Equal(t, DefaultSplitChains, o.SplitChains)
	assert.Equal(t, DefaultMaxLag, o.MaxLag)
	assert.Equal(t, DefaultTailProb, o.TailProb)
	assert.Equal(t, MethodDirect, o.Method)
	assert.Equal(t, kindDefault, o.Kind)
}

func TestNormalizedRejects(t *testing.T) {
	cases := map[string]struct {
		opts Options
		want error
	}{
		"negative split":      {Options{SplitChains: -1}, ErrSplitChains},
		"negative maxlag":     {Options{MaxLag: -5}, ErrMaxLag},
		"tail prob too big":   {Options{TailProb: 1.2}, ErrTailProb},
		"tail prob negative":  {Options{TailProb: -0.1}, ErrTailProb},
		"unknown kind":        {Options{Kind: Kind(42)}, ErrUnknownKind},
		"unknown method":      {Options{Method: Method(9)}, ErrUnknownMethod},
		"fft no transform":    {Options{Method: MethodFFT}, ErrMissingTransform},
		"kind plus estimator": {Options{Kind: KindTail, Estimator: Std}, ErrKindAndEstimator},
		"quantile prob high":  {Options{Estimator: Quantile(1.5)}, ErrQuantileProb},
		"quantile prob zero":  {Options{Estimator: Quantile(0)}, ErrQuantileProb},
	}
	for name, tc := range cases {
		_, err := tc.opts.normalized()
		assert.ErrorIs(t, err, tc.want, name)
	}
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "direct", MethodDirect.String())
	assert.Equal(t, "fft", MethodFFT.String())
	assert.Equal(t, "variogram", MethodVariogram.String())
	assert.Equal(t, "rank", KindRank.String())
	assert.Equal(t, "basic", KindBasic.String())
	assert.Equal(t, "mad", MAD.String())
	assert.Equal(t, "quantile(0.3)", Quantile(0.3).String())
	assert.Equal(t, "none", Estimator{}.String())
}
