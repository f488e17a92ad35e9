package autocov

import "gonum.org/v1/gonum/floats"

// Direct recomputes each query from scratch: per chain, the dot product
// of the buffer with its lagged self, averaged across chains and
// divided by niter (biased but stable). No precomputation, O(niter) per
// query.
type Direct struct{}

func (Direct) Build(samples [][]float64, chainVar []float64) (Cache, error) {
	if err := checkDims(samples, chainVar); err != nil {
		return nil, err
	}
	return &directCache{samples: samples}, nil
}

type directCache struct {
	samples [][]float64
}

func (c *directCache) Update() {}

func (c *directCache) MeanAutocov(lag int) (float64, error) {
	niter := len(c.samples[0])
	if lag < 0 || lag >= niter {
		return 0, ErrLagOutOfRange
	}
	sum := 0.0
	for _, col := range c.samples {
		sum += floats.Dot(col[:niter-lag], col[lag:])
	}
	return sum / float64(len(c.samples)*niter), nil
}
