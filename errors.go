package mcmcdiag

import (
	"errors"

	"github.com/devmotion/mcmcdiag/internal/autocov"
	"github.com/devmotion/mcmcdiag/internal/estimator"
	"github.com/devmotion/mcmcdiag/internal/expectand"
)

// Configuration errors. All of them are detected at call entry and
// abort the whole call with no partial results.
var (
	// ErrKindAndEstimator indicates a request setting both a diagnostic
	// kind and a target estimator.
	ErrKindAndEstimator = errors.New("mcmcdiag: kind and estimator are mutually exclusive")

	// ErrUnknownKind indicates a diagnostic kind outside basic, bulk,
	// tail, rank.
	ErrUnknownKind = errors.New("mcmcdiag: unknown diagnostic kind")

	// ErrUnknownMethod indicates an autocovariance method outside
	// direct, fft, variogram.
	ErrUnknownMethod = errors.New("mcmcdiag: unknown autocovariance method")

	// ErrTailProb indicates a tail probability outside (0, 1).
	ErrTailProb = errors.New("mcmcdiag: tail_prob must be inside (0, 1)")

	// ErrQuantileProb indicates a quantile probability outside (0, 1).
	ErrQuantileProb = errors.New("mcmcdiag: quantile probability must be inside (0, 1)")

	// ErrUnknownEstimator indicates a target estimator with no
	// expectand proxy.
	ErrUnknownEstimator = expectand.ErrUnsupported

	// ErrSplitChains indicates a non-positive split count.
	ErrSplitChains = estimator.ErrSplitChains

	// ErrMaxLag indicates a non-positive maximum lag.
	ErrMaxLag = estimator.ErrMaxLag

	// ErrTooFewDraws indicates that splitting leaves four or fewer
	// draws per composite chain.
	ErrTooFewDraws = estimator.ErrTooFewDraws

	// ErrDimensionMismatch indicates a backend cache built over
	// mismatched buffer and chain-variance dimensions.
	ErrDimensionMismatch = autocov.ErrDimensionMismatch
)

// ErrMissingTransform indicates the FFT-accelerated method was selected
// without a transform capability. There is no silent fallback to
// another method.
var ErrMissingTransform = autocov.ErrMissingTransform

// ErrLagOutOfRange guards autocovariance queries outside [0, niter).
// Unreachable through the public API as long as the estimator respects
// its own lag clamp.
var ErrLagOutOfRange = autocov.ErrLagOutOfRange
