// Package godspfft provides the FFT transform capability for the
// FFT-accelerated autocovariance method, backed by
// github.com/mjibson/go-dsp. The transforms accept any length, so the
// backend's product-of-small-primes padding is always valid.
package godspfft

import "github.com/mjibson/go-dsp/fft"

// Transform implements mcmcdiag.Transform.
type Transform struct{}

// New returns the go-dsp backed transform. It is stateless and safe to
// share across goroutines.
func New() Transform { return Transform{} }

func (Transform) Forward(x []complex128) []complex128 { return fft.FFT(x) }

func (Transform) Inverse(x []complex128) []complex128 { return fft.IFFT(x) }
