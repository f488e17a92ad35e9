// Package autocov computes mean cross-chain autocovariance at a given
// lag, with three interchangeable estimation strategies sharing one
// cache contract: build once per diagnostic call, update after the
// sample buffer changes, then query lags.
package autocov

import "errors"

var (
	// ErrDimensionMismatch indicates a chain-variance vector whose length
	// does not match the number of chains in the sample buffer.
	ErrDimensionMismatch = errors.New("autocov: chain variance length does not match chain count")

	// ErrLagOutOfRange indicates a lag query outside [0, niter).
	ErrLagOutOfRange = errors.New("autocov: lag out of range")

	// ErrMissingTransform indicates the FFT backend was built without a
	// transform capability.
	ErrMissingTransform = errors.New("autocov: fft transform capability not provided")
)

// Transform is an externally supplied complex FFT capability. Forward
// and Inverse need not normalize consistently: queries only ever use
// ratios of inverse-transform outputs, so any common scale cancels.
type Transform interface {
	Forward(x []complex128) []complex128
	Inverse(x []complex128) []complex128
}

// Cache holds one backend's working state for a fixed sample buffer.
// The buffer is shared with the caller and overwritten between
// parameters; Update must be called after every overwrite (and after
// centering) before any MeanAutocov query.
type Cache interface {
	// Update refreshes derived state from the current buffer contents.
	Update()

	// MeanAutocov returns the autocovariance at the given lag averaged
	// across chains. Valid for 0 <= lag < niter.
	MeanAutocov(lag int) (float64, error)
}

// Backend builds a Cache over a sample buffer. samples holds one column
// per chain, all of equal length niter; chainVar holds the matching
// Bessel-corrected per-chain variances. Both are borrowed, not copied:
// the cache observes later in-place mutation through Update.
type Backend interface {
	Build(samples [][]float64, chainVar []float64) (Cache, error)
}

func checkDims(samples [][]float64, chainVar []float64) error {
	if len(chainVar) != len(samples) {
		return ErrDimensionMismatch
	}
	return nil
}
