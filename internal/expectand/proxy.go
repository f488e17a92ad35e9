// Package expectand maps a target estimator (mean, median, std, mad,
// quantile) to a transformed sample array whose mean-based effective
// sample size approximates the effective sample size of that estimator.
package expectand

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/devmotion/mcmcdiag/chains"
)

// ErrUnsupported indicates an estimator this package has no proxy for.
var ErrUnsupported = errors.New("expectand: unsupported estimator")

// Kind selects the target estimator.
type Kind int

const (
	Mean Kind = iota
	Median
	Std
	MAD
	Quantile
)

func (k Kind) String() string {
	switch k {
	case Mean:
		return "mean"
	case Median:
		return "median"
	case Std:
		return "std"
	case MAD:
		return "mad"
	case Quantile:
		return "quantile"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Estimator is a target estimator; Prob is only read for Quantile.
type Estimator struct {
	Kind Kind
	Prob float64
}

// Apply returns the proxy transform of src for the estimator. Slices
// whose statistic needs every cell (all kinds but Mean) become entirely
// missing when any cell is missing; Mean copies per-cell missing marks
// through. Either way the estimator stage reports the parameter as
// missing.
func Apply(src *chains.Array, e Estimator) (*chains.Array, error) {
	switch e.Kind {
	case Mean, Median, Std, MAD, Quantile:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, e.Kind)
	}

	dst := chains.Like(src)
	for p := 0; p < src.Params(); p++ {
		applyParam(dst, src, p, e)
	}
	return dst, nil
}

func applyParam(dst, src *chains.Array, param int, e Estimator) {
	s := src.Param(param)
	if e.Kind == Mean {
		for c := 0; c < s.Chains(); c++ {
			for d := 0; d < s.Draws(); d++ {
				if s.Missing(d, c) {
					dst.SetMissing(d, c, param)
				} else {
					dst.Set(d, c, param, s.At(d, c))
				}
			}
		}
		return
	}
	if s.HasMissing() {
		dst.SetParamMissing(param)
		return
	}

	vals := s.Flatten(nil)
	draws := s.Draws()
	var transform func(v float64) float64
	switch e.Kind {
	case Median:
		m := quantile(vals, 0.5)
		transform = indicatorBelow(m)
	case Std:
		g := stat.Mean(vals, nil)
		transform = func(v float64) float64 { d := v - g; return d * d }
	case MAD:
		// fold around the median, then the median indicator of the folds
		m := quantile(vals, 0.5)
		folded := make([]float64, len(vals))
		for i, v := range vals {
			folded[i] = math.Abs(v - m)
		}
		m2 := quantile(folded, 0.5)
		transform = func(v float64) float64 { return indicatorBelow(m2)(math.Abs(v - m)) }
	case Quantile:
		q := quantile(vals, e.Prob)
		transform = indicatorBelow(q)
	}
	for idx, v := range vals {
		dst.Set(idx%draws, idx/draws, param, transform(v))
	}
}

func indicatorBelow(threshold float64) func(float64) float64 {
	return func(v float64) float64 {
		if v <= threshold {
			return 1
		}
		return 0
	}
}

// quantile interpolates linearly between order statistics (h = (n-1)p).
// It sorts a copy of vals.
func quantile(vals []float64, p float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
