// Package ranknorm maps raw draws to normal quantiles of their tied
// fractional rank, the heavy-tail-robust transform behind bulk-type
// diagnostics.
package ranknorm

import (
	"math"
	"sort"

	"github.com/devmotion/mcmcdiag/chains"
)

// Normalize writes the rank-normal transform of one parameter of src
// into the same parameter of dst. Ranks are tied fractional ranks over
// the flattened draw × chain values; rank r of n maps to
// Phi^-1((r - 3/8) / (n + 1/4)). A slice with any missing cell becomes
// entirely missing: ranks are undefined there and the estimator marks
// the parameter missing regardless.
func Normalize(dst, src *chains.Array, param int) {
	s := src.Param(param)
	if s.HasMissing() {
		dst.SetParamMissing(param)
		return
	}
	vals := s.Flatten(nil)
	ranks := tiedRanks(vals)
	n := float64(len(vals))
	draws := s.Draws()
	for idx, r := range ranks {
		z := normalQuantile((r - 0.375) / (n + 0.25))
		dst.Set(idx%draws, idx/draws, param, z)
	}
}

// tiedRanks returns 1-indexed fractional ranks; a group of equal values
// shares the mean of the ranks it spans.
func tiedRanks(vals []float64) []float64 {
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return vals[order[i]] < vals[order[j]] })

	ranks := make([]float64, len(vals))
	for lo := 0; lo < len(order); {
		hi := lo + 1
		for hi < len(order) && vals[order[hi]] == vals[order[lo]] {
			hi++
		}
		// ranks lo+1 .. hi averaged over the tie group
		r := float64(lo+1+hi) / 2
		for _, i := range order[lo:hi] {
			ranks[i] = r
		}
		lo = hi
	}
	return ranks
}

func normalQuantile(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
