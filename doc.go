// Package mcmcdiag estimates convergence diagnostics for Markov chain
// Monte Carlo output: effective sample size (ess) and the potential
// scale reduction factor (rhat), per parameter of a draw × chain ×
// parameter sample array.
//
//   - [ESSRhat]: both diagnostics, default kind rank
//   - [ESS]: effective sample size only, default kind basic
//   - [Rhat]: scale reduction only, default kind rank
//
// The autocovariances behind ess can be computed directly, through an
// FFT power spectrum, or with the Gelman variogram estimator; see
// [Method]. The FFT route needs a transform capability:
//
//	arr, _ := chains.FromValues(draws, ndraws, nchains, nparams)
//	res, err := mcmcdiag.ESSRhat(arr, mcmcdiag.Options{
//	    Method:    mcmcdiag.MethodFFT,
//	    Transform: godspfft.New(),
//	})
//
// Diagnostic kinds follow Vehtari et al. (2021): basic works on the raw
// draws, bulk on rank-normalized draws, tail on the extreme-quantile
// indicators, and rank combines bulk ess with the worse of the bulk and
// tail rhat. Target-estimator requests (mean, median, std, mad,
// quantile) run the basic diagnostic on an expectand proxy instead.
//
// Every call is a pure function of its inputs and safe to run
// concurrently with any other call.
package mcmcdiag
