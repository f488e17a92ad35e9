package mcmcdiag

import (
	"fmt"

	"github.com/devmotion/mcmcdiag/internal/autocov"
	"github.com/devmotion/mcmcdiag/internal/expectand"
)

// Defaults for the pure configuration parameters. Zero-valued Options
// fields resolve to these.
const (
	DefaultSplitChains = 2
	DefaultMaxLag      = 250
	DefaultTailProb    = 0.1
)

// Transform is the externally supplied forward/inverse complex FFT
// capability required by MethodFFT. Package godspfft provides one.
type Transform = autocov.Transform

// Method selects the autocovariance computation strategy.
type Method int

const (
	// MethodDirect recomputes every lag query from scratch.
	MethodDirect Method = iota

	// MethodFFT precomputes all lags through an FFT power spectrum and
	// answers queries in constant time. Requires Options.Transform.
	MethodFFT

	// MethodVariogram uses the Gelman variogram estimator.
	MethodVariogram
)

func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodFFT:
		return "fft"
	case MethodVariogram:
		return "variogram"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// Kind selects the diagnostic variant. The zero value defers to the
// entry point's default: rank for ESSRhat and Rhat, basic for ESS.
type Kind int

const (
	kindDefault Kind = iota

	// KindBasic runs the estimator on the raw draws.
	KindBasic

	// KindBulk runs the estimator on rank-normalized draws.
	KindBulk

	// KindTail combines the diagnostics of the two tail-quantile
	// indicator transforms: worst rhat, smallest ess.
	KindTail

	// KindRank reports bulk ess and the worse of bulk and tail rhat.
	KindRank
)

func (k Kind) String() string {
	switch k {
	case kindDefault:
		return "default"
	case KindBasic:
		return "basic"
	case KindBulk:
		return "bulk"
	case KindTail:
		return "tail"
	case KindRank:
		return "rank"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Estimator is a target estimator whose effective sample size should be
// approximated through an expectand proxy. Setting one is mutually
// exclusive with setting a Kind.
type Estimator struct {
	kind expectand.Kind
	prob float64
	set  bool
}

var (
	Mean   = Estimator{kind: expectand.Mean, set: true}
	Median = Estimator{kind: expectand.Median, set: true}
	Std    = Estimator{kind: expectand.Std, set: true}
	MAD    = Estimator{kind: expectand.MAD, set: true}
)

// Quantile targets the p-quantile estimator.
func Quantile(p float64) Estimator {
	return Estimator{kind: expectand.Quantile, prob: p, set: true}
}

func (e Estimator) String() string {
	if !e.set {
		return "none"
	}
	if e.kind == expectand.Quantile {
		return fmt.Sprintf("quantile(%g)", e.prob)
	}
	return e.kind.String()
}

// Options are the pure parameters of one diagnostic call. The zero
// value is valid and means: direct method, per-entry-point default
// kind, split 2, maxlag 250, tail probability 0.1, serial evaluation.
type Options struct {
	// Method selects the autocovariance backend.
	Method Method

	// Kind selects the diagnostic variant. Leave zero for the entry
	// point's default. Mutually exclusive with Estimator.
	Kind Kind

	// Estimator routes the request through an expectand proxy and the
	// basic diagnostic.
	Estimator Estimator

	// SplitChains is the number of sub-chains each chain is split into.
	SplitChains int

	// MaxLag bounds the autocorrelation summation; it is clamped to
	// niter-4 internally.
	MaxLag int

	// TailProb is the total tail mass for tail-kind diagnostics.
	TailProb float64

	// Transform supplies the FFT capability for MethodFFT.
	Transform Transform

	// Relative reports ess/ntotal instead of ess.
	Relative bool

	// Workers parallelizes across the parameter axis; each worker owns
	// an independent split buffer and cache.
	Workers int
}

// normalized fills defaulted fields and validates everything that does
// not need the sample array.
func (o Options) normalized() (Options, error) {
	if o.SplitChains == 0 {
		o.SplitChains = DefaultSplitChains
	}
	if o.MaxLag == 0 {
		o.MaxLag = DefaultMaxLag
	}
	if o.TailProb == 0 {
		o.TailProb = DefaultTailProb
	}

	if o.SplitChains < 1 {
		return o, fmt.Errorf("%w: got %d", ErrSplitChains, o.SplitChains)
	}
	if o.MaxLag < 1 {
		return o, fmt.Errorf("%w: got %d", ErrMaxLag, o.MaxLag)
	}
	if o.TailProb <= 0 || o.TailProb >= 1 {
		return o, fmt.Errorf("%w: got %g", ErrTailProb, o.TailProb)
	}
	if o.Kind < kindDefault || o.Kind > KindRank {
		return o, fmt.Errorf("%w: %s", ErrUnknownKind, o.Kind)
	}
	if o.Estimator.set {
		if o.Kind != kindDefault {
			return o, fmt.Errorf("%w: estimator %s with kind %s", ErrKindAndEstimator, o.Estimator, o.Kind)
		}
		if o.Estimator.kind == expectand.Quantile && (o.Estimator.prob <= 0 || o.Estimator.prob >= 1) {
			return o, fmt.Errorf("%w: got %g", ErrQuantileProb, o.Estimator.prob)
		}
	}

	switch o.Method {
	case MethodDirect, MethodVariogram:
	case MethodFFT:
		if o.Transform == nil {
			return o, fmt.Errorf("%w: method %s", ErrMissingTransform, o.Method)
		}
	default:
		return o, fmt.Errorf("%w: %s", ErrUnknownMethod, o.Method)
	}
	return o, nil
}

func (o Options) backend() autocov.Backend {
	switch o.Method {
	case MethodFFT:
		return autocov.FFT{Transform: o.Transform}
	case MethodVariogram:
		return autocov.Variogram{}
	default:
		return autocov.Direct{}
	}
}
