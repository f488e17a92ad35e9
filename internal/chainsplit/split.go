// Package chainsplit reshapes one parameter's draw × chain slice into
// more, shorter chains to expose within-chain non-stationarity.
package chainsplit

import "github.com/devmotion/mcmcdiag/chains"

// Dims returns the post-split iteration count and chain count.
func Dims(draws, nchains, split int) (niter, nsplit int) {
	return draws / split, nchains * split
}

// NewBuffer allocates a split buffer with one column per composite
// chain, backed by a single contiguous allocation.
func NewBuffer(niter, nsplit int) [][]float64 {
	backing := make([]float64, niter*nsplit)
	out := make([][]float64, nsplit)
	for i := range out {
		out[i] = backing[i*niter : (i+1)*niter]
	}
	return out
}

// Split copies the slice into out, one column per composite chain, in
// place and without allocating. Source chain c occupies columns
// c*split .. c*split+split-1 in draw order. When draws is not divisible
// by split, each of the first draws%split sub-chains drops one draw
// from its front, which keeps the stationary tails intact.
func Split(out [][]float64, s chains.Slice, split int) {
	draws := s.Draws()
	niter := draws / split
	rem := draws % split
	for c := 0; c < s.Chains(); c++ {
		for j := 0; j < split; j++ {
			start := j*niter + min(j, rem)
			if j < rem {
				start++
			}
			col := out[c*split+j]
			for i := 0; i < niter; i++ {
				col[i] = s.At(start+i, c)
			}
		}
	}
}
