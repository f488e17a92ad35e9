// Package estimator computes effective sample size and the potential
// scale reduction factor per parameter: split chains, center, cache
// autocovariances, then sum autocorrelation pairs under a monotone
// non-increasing envelope.
package estimator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/devmotion/mcmcdiag/chains"
	"github.com/devmotion/mcmcdiag/internal/autocov"
	"github.com/devmotion/mcmcdiag/internal/chainsplit"
)

var (
	// ErrSplitChains indicates a non-positive split count.
	ErrSplitChains = errors.New("estimator: split_chains must be positive")

	// ErrMaxLag indicates a non-positive maximum lag.
	ErrMaxLag = errors.New("estimator: maxlag must be positive")

	// ErrTooFewDraws indicates that splitting left four or fewer draws
	// per composite chain.
	ErrTooFewDraws = errors.New("estimator: need more than four draws per chain after splitting")
)

// Config are the pure parameters of one estimator call.
type Config struct {
	SplitChains int
	MaxLag      int
	Relative    bool // report ess/ntotal instead of ess
	Workers     int  // parameter-axis parallelism; <=1 means serial
}

// Result holds one (ess, rhat) pair per parameter. A parameter whose
// slice had any missing draw is missing in both outputs.
type Result struct {
	ESS  []chains.Value
	Rhat []chains.Value
}

// Validate checks the call preconditions for the given draw count:
// positive split and maxlag, more than four draws per chain after
// splitting. Run repeats the check, but callers that transform the
// array first use Validate to fail before any computation.
func Validate(draws int, cfg Config) error {
	if cfg.SplitChains < 1 {
		return fmt.Errorf("%w: got %d", ErrSplitChains, cfg.SplitChains)
	}
	if cfg.MaxLag <= 0 {
		return fmt.Errorf("%w: got %d", ErrMaxLag, cfg.MaxLag)
	}
	if niter := draws / cfg.SplitChains; niter <= 4 {
		return fmt.Errorf("%w: %d draws split %d ways leaves %d", ErrTooFewDraws, draws, cfg.SplitChains, niter)
	}
	return nil
}

// Run estimates ess and rhat for every parameter of arr using the given
// autocovariance backend. Scratch state (split buffer, chain moments,
// backend cache) is built once and reused across parameters; with
// Workers > 1 each worker owns an independent copy.
func Run(arr *chains.Array, backend autocov.Backend, cfg Config) (*Result, error) {
	if err := Validate(arr.Draws(), cfg); err != nil {
		return nil, err
	}

	res := &Result{
		ESS:  make([]chains.Value, arr.Params()),
		Rhat: make([]chains.Value, arr.Params()),
	}
	if workers := clampWorkers(cfg.Workers, arr.Params()); workers > 1 {
		if err := runParallel(arr, backend, cfg, workers, res); err != nil {
			return nil, err
		}
		return res, nil
	}

	ws, err := newWorkspace(arr, backend, cfg)
	if err != nil {
		return nil, err
	}
	for p := 0; p < arr.Params(); p++ {
		if err := ws.estimate(arr.Param(p), &res.ESS[p], &res.Rhat[p]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// workspace is the per-call scratch state: the split buffer, per-chain
// moments, and the backend cache built over them. All of it is mutated
// in place for every parameter, so a workspace must never be shared
// across goroutines.
type workspace struct {
	split     int
	maxlag    int
	relative  bool
	buf       [][]float64
	chainMean []float64
	chainVar  []float64
	cache     autocov.Cache
}

func newWorkspace(arr *chains.Array, backend autocov.Backend, cfg Config) (*workspace, error) {
	niter, nsplit := chainsplit.Dims(arr.Draws(), arr.Chains(), cfg.SplitChains)
	ws := &workspace{
		split:     cfg.SplitChains,
		maxlag:    min(cfg.MaxLag, niter-4),
		relative:  cfg.Relative,
		buf:       chainsplit.NewBuffer(niter, nsplit),
		chainMean: make([]float64, nsplit),
		chainVar:  make([]float64, nsplit),
	}
	cache, err := backend.Build(ws.buf, ws.chainVar)
	if err != nil {
		return nil, err
	}
	ws.cache = cache
	return ws, nil
}

func (ws *workspace) estimate(s chains.Slice, ess, rhat *chains.Value) error {
	if s.HasMissing() {
		*ess = chains.None()
		*rhat = chains.None()
		return nil
	}

	chainsplit.Split(ws.buf, s, ws.split)
	niter := len(ws.buf[0])
	nsplit := len(ws.buf)
	ntotal := float64(niter * nsplit)

	for i, col := range ws.buf {
		ws.chainMean[i], ws.chainVar[i] = stat.MeanVariance(col, nil)
	}
	w := stat.Mean(ws.chainVar, nil)

	// between-chain term; the Bessel correction would divide by zero
	// with a single composite chain
	b := 0.0
	if nsplit > 1 {
		_, b = stat.MeanVariance(ws.chainMean, nil)
	}
	varPlus := w*float64(niter-1)/float64(niter) + b

	if w == 0 {
		// every composite chain is constant
		r := 1.0
		if b > 0 {
			r = math.Inf(1)
		}
		*ess = chains.Real(ws.finish(essCap(ntotal), ntotal))
		*rhat = chains.Real(r)
		return nil
	}
	*rhat = chains.Real(math.Sqrt(varPlus / w))

	for i, col := range ws.buf {
		m := ws.chainMean[i]
		for j := range col {
			col[j] -= m
		}
	}
	ws.cache.Update()

	// rho(0) is exactly 1; pair it with rho(1) and keep summing lag
	// pairs while their sum stays positive and non-increasing
	ac, err := ws.cache.MeanAutocov(1)
	if err != nil {
		return err
	}
	pt := 1 + (1 - (w-ac)/varPlus)
	sumPt := pt

	k := 2
	for k < ws.maxlag-1 {
		acEven, err := ws.cache.MeanAutocov(k)
		if err != nil {
			return err
		}
		acOdd, err := ws.cache.MeanAutocov(k + 1)
		if err != nil {
			return err
		}
		delta := (1 - (w-acEven)/varPlus) + (1 - (w-acOdd)/varPlus)
		if delta <= 0 {
			break
		}
		if delta < pt {
			pt = delta
		}
		sumPt += pt
		k += 2
	}

	// antithetic chains make odd-lag autocorrelation negative; one
	// trailing even-lag term captures that variance reduction
	trailing := 0.0
	if ws.maxlag > 1 {
		ac, err := ws.cache.MeanAutocov(k)
		if err != nil {
			return err
		}
		trailing = 1 - (w-ac)/varPlus
	}

	tau := 2*sumPt + math.Max(0, trailing) - 1
	if tau < 0 {
		tau = 0
	}
	*ess = chains.Real(ws.finish(math.Min(ntotal/tau, essCap(ntotal)), ntotal))
	return nil
}

func (ws *workspace) finish(ess, ntotal float64) float64 {
	if ws.relative {
		return ess / ntotal
	}
	return ess
}

func essCap(ntotal float64) float64 {
	return ntotal * math.Log10(ntotal)
}
