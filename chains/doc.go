// Package chains holds MCMC sample arrays in draw × chain × parameter
// layout, with explicit per-cell missing values.
//
//   - [Array]: 3D sample storage with a missing mask
//   - [Slice]: 2D draw × chain view of one parameter
//   - [Value]: a real number or an explicit missing marker
//
// A missing cell is distinct from any float value, including NaN: NaN
// draws flow through the diagnostics as numbers, missing cells make the
// affected parameter's outputs missing.
package chains
