package mcmcdiag

import (
	"github.com/devmotion/mcmcdiag/chains"
	"github.com/devmotion/mcmcdiag/internal/estimator"
	"github.com/devmotion/mcmcdiag/internal/expectand"
	"github.com/devmotion/mcmcdiag/internal/ranknorm"
)

// Result holds one ess and one rhat entry per parameter. Parameters
// with any missing draw are missing in both.
type Result struct {
	ESS  []chains.Value
	Rhat []chains.Value
}

// ESSRhat computes effective sample size and potential scale reduction
// per parameter. The default kind is rank.
func ESSRhat(arr *chains.Array, opts Options) (*Result, error) {
	return diagnose(arr, opts, KindRank)
}

// ESS computes effective sample size per parameter. The default kind is
// basic.
func ESS(arr *chains.Array, opts Options) ([]chains.Value, error) {
	res, err := diagnose(arr, opts, KindBasic)
	if err != nil {
		return nil, err
	}
	return res.ESS, nil
}

// Rhat computes the potential scale reduction per parameter. The
// default kind is rank. When every split chain is constant but the
// chains sit at different levels, the within-chain variance is zero
// and rhat is +Inf; it is never NaN.
func Rhat(arr *chains.Array, opts Options) ([]chains.Value, error) {
	res, err := diagnose(arr, opts, KindRank)
	if err != nil {
		return nil, err
	}
	return res.Rhat, nil
}

func diagnose(arr *chains.Array, opts Options, fallback Kind) (*Result, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	cfg := estimator.Config{
		SplitChains: opts.SplitChains,
		MaxLag:      opts.MaxLag,
		Relative:    opts.Relative,
		Workers:     opts.Workers,
	}
	if err := estimator.Validate(arr.Draws(), cfg); err != nil {
		return nil, err
	}

	if opts.Estimator.set {
		proxied, err := expectand.Apply(arr, expectand.Estimator{Kind: opts.Estimator.kind, Prob: opts.Estimator.prob})
		if err != nil {
			return nil, err
		}
		return run(proxied, opts, cfg)
	}

	kind := opts.Kind
	if kind == kindDefault {
		kind = fallback
	}
	switch kind {
	case KindBasic:
		return run(arr, opts, cfg)
	case KindBulk:
		return run(rankNormalized(arr), opts, cfg)
	case KindTail:
		return tailDiagnostic(arr, opts, cfg)
	case KindRank:
		bulk, err := run(rankNormalized(arr), opts, cfg)
		if err != nil {
			return nil, err
		}
		tail, err := tailDiagnostic(arr, opts, cfg)
		if err != nil {
			return nil, err
		}
		res := &Result{ESS: bulk.ESS, Rhat: make([]chains.Value, len(bulk.Rhat))}
		for i := range res.Rhat {
			res.Rhat[i] = maxValue(bulk.Rhat[i], tail.Rhat[i])
		}
		return res, nil
	}
	// unreachable after normalized()
	return nil, ErrUnknownKind
}

func run(arr *chains.Array, opts Options, cfg estimator.Config) (*Result, error) {
	res, err := estimator.Run(arr, opts.backend(), cfg)
	if err != nil {
		return nil, err
	}
	return &Result{ESS: res.ESS, Rhat: res.Rhat}, nil
}

// tailDiagnostic runs the estimator on the lower and upper tail
// quantile indicators and keeps the worse of each pair: the smaller
// ess, the larger rhat.
func tailDiagnostic(arr *chains.Array, opts Options, cfg estimator.Config) (*Result, error) {
	half := opts.TailProb / 2
	lower, err := runProxied(arr, expectand.Estimator{Kind: expectand.Quantile, Prob: half}, opts, cfg)
	if err != nil {
		return nil, err
	}
	upper, err := runProxied(arr, expectand.Estimator{Kind: expectand.Quantile, Prob: 1 - half}, opts, cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ESS:  make([]chains.Value, len(lower.ESS)),
		Rhat: make([]chains.Value, len(lower.Rhat)),
	}
	for i := range res.ESS {
		res.ESS[i] = minValue(lower.ESS[i], upper.ESS[i])
		res.Rhat[i] = maxValue(lower.Rhat[i], upper.Rhat[i])
	}
	return res, nil
}

func runProxied(arr *chains.Array, e expectand.Estimator, opts Options, cfg estimator.Config) (*Result, error) {
	proxied, err := expectand.Apply(arr, e)
	if err != nil {
		return nil, err
	}
	return run(proxied, opts, cfg)
}

func rankNormalized(arr *chains.Array) *chains.Array {
	dst := chains.Like(arr)
	for p := 0; p < arr.Params(); p++ {
		ranknorm.Normalize(dst, arr, p)
	}
	return dst
}

func minValue(a, b chains.Value) chains.Value {
	if a.Missing || b.Missing {
		return chains.None()
	}
	if b.Float64 < a.Float64 {
		return b
	}
	return a
}

func maxValue(a, b chains.Value) chains.Value {
	if a.Missing || b.Missing {
		return chains.None()
	}
	if b.Float64 > a.Float64 {
		return b
	}
	return a
}
