package autocov

import "gonum.org/v1/gonum/stat"

// Variogram uses the Gelman variogram estimator: the mean chain
// variance minus half the mean squared lag-k increment.
type Variogram struct{}

func (Variogram) Build(samples [][]float64, chainVar []float64) (Cache, error) {
	if err := checkDims(samples, chainVar); err != nil {
		return nil, err
	}
	c := &variogramCache{samples: samples, chainVar: chainVar}
	c.Update()
	return c, nil
}

type variogramCache struct {
	samples  [][]float64
	chainVar []float64
	meanVar  float64
}

func (c *variogramCache) Update() {
	c.meanVar = stat.Mean(c.chainVar, nil)
}

func (c *variogramCache) MeanAutocov(lag int) (float64, error) {
	niter := len(c.samples[0])
	if lag < 0 || lag >= niter {
		return 0, ErrLagOutOfRange
	}
	n := niter - lag
	sum := 0.0
	for _, col := range c.samples {
		s := 0.0
		for i := 0; i < n; i++ {
			d := col[i] - col[i+lag]
			s += d * d
		}
		sum += s / float64(2*n)
	}
	return c.meanVar - sum/float64(len(c.samples)), nil
}
