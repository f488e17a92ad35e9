package autocov

// FFT computes all lags at once through the Wiener–Khinchin route: pad
// each centered chain to a fast length, forward transform, square the
// magnitudes, inverse transform. Queries are then O(1) table reads.
type FFT struct {
	Transform Transform
}

func (f FFT) Build(samples [][]float64, chainVar []float64) (Cache, error) {
	if f.Transform == nil {
		return nil, ErrMissingTransform
	}
	if err := checkDims(samples, chainVar); err != nil {
		return nil, err
	}
	niter := len(samples[0])
	npad := fastLength(2*niter - 1)
	acov := make([][]float64, len(samples))
	for i := range acov {
		acov[i] = make([]float64, niter)
	}
	return &fftCache{
		samples:  samples,
		chainVar: chainVar,
		t:        f.Transform,
		buf:      make([]complex128, npad),
		acov:     acov,
	}, nil
}

type fftCache struct {
	samples  [][]float64
	chainVar []float64
	t        Transform

	buf  []complex128 // zero-padded transform scratch, reused per chain
	acov [][]float64  // unnormalized autocovariance table per chain
}

func (c *fftCache) Update() {
	niter := len(c.samples[0])
	for ci, col := range c.samples {
		for i, v := range col {
			c.buf[i] = complex(v, 0)
		}
		for i := niter; i < len(c.buf); i++ {
			c.buf[i] = 0
		}
		freq := c.t.Forward(c.buf)
		for i, f := range freq {
			re, im := real(f), imag(f)
			freq[i] = complex(re*re+im*im, 0)
		}
		out := c.t.Inverse(freq)
		for k := 0; k < niter; k++ {
			c.acov[ci][k] = real(out[k])
		}
	}
}

func (c *fftCache) MeanAutocov(lag int) (float64, error) {
	niter := len(c.samples[0])
	if lag < 0 || lag >= niter {
		return 0, ErrLagOutOfRange
	}
	// Normalizing by the zero-lag energy and rescaling with the stored
	// chain variance undoes the Bessel correction up to the final
	// (niter-1)/niter factor.
	sum := 0.0
	for ci := range c.acov {
		// a constant chain has zero energy and zero autocovariance
		if v := c.chainVar[ci]; v != 0 {
			sum += c.acov[ci][lag] / c.acov[ci][0] * v
		}
	}
	mean := sum / float64(len(c.acov))
	return mean * float64(niter-1) / float64(niter), nil
}

// fastLength returns the smallest product of 2s and 3s that is >= n.
func fastLength(n int) int {
	best := 1
	for best < n {
		best <<= 1
	}
	for p3 := 1; p3 < best; p3 *= 3 {
		p := p3
		for p < n {
			p <<= 1
		}
		if p < best {
			best = p
		}
	}
	return best
}
