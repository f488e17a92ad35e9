package chains

import (
	"errors"
	"fmt"
)

// ErrShape indicates array dimensions that do not describe the data.
var ErrShape = errors.New("chains: invalid array shape")

// Value is one diagnostic output: either a real number or missing.
type Value struct {
	Float64 float64
	Missing bool
}

// Real wraps a float in a present Value.
func Real(v float64) Value { return Value{Float64: v} }

// None is the missing Value.
func None() Value { return Value{Missing: true} }

// Array is a draw × chain × parameter sample array. Cells are stored
// column-major (draw index varies fastest) alongside a missing mask.
type Array struct {
	draws   int
	nchains int
	params  int
	data    []float64
	missing []bool
}

// New allocates a zero-filled array with no missing cells.
func New(draws, nchains, params int) (*Array, error) {
	if draws <= 0 || nchains <= 0 || params <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrShape, draws, nchains, params)
	}
	n := draws * nchains * params
	return &Array{
		draws:   draws,
		nchains: nchains,
		params:  params,
		data:    make([]float64, n),
		missing: make([]bool, n),
	}, nil
}

// FromValues copies a flat slice laid out with the draw index varying
// fastest, then chain, then parameter.
func FromValues(values []float64, draws, nchains, params int) (*Array, error) {
	a, err := New(draws, nchains, params)
	if err != nil {
		return nil, err
	}
	if len(values) != len(a.data) {
		return nil, fmt.Errorf("%w: %d values for %dx%dx%d", ErrShape, len(values), draws, nchains, params)
	}
	copy(a.data, values)
	return a, nil
}

func (a *Array) Draws() int  { return a.draws }
func (a *Array) Chains() int { return a.nchains }
func (a *Array) Params() int { return a.params }

func (a *Array) index(draw, chain, param int) int {
	return (param*a.nchains+chain)*a.draws + draw
}

// At returns the cell value. Missing cells read as their stored float,
// use IsMissing to distinguish.
func (a *Array) At(draw, chain, param int) float64 {
	return a.data[a.index(draw, chain, param)]
}

// Set stores a value and clears the missing mark for the cell.
func (a *Array) Set(draw, chain, param int, v float64) {
	i := a.index(draw, chain, param)
	a.data[i] = v
	a.missing[i] = false
}

// SetMissing marks a cell as missing.
func (a *Array) SetMissing(draw, chain, param int) {
	a.missing[a.index(draw, chain, param)] = true
}

// IsMissing reports whether a cell is missing.
func (a *Array) IsMissing(draw, chain, param int) bool {
	return a.missing[a.index(draw, chain, param)]
}

// Like returns an empty array with the same shape as a.
func Like(a *Array) *Array {
	n := a.draws * a.nchains * a.params
	return &Array{
		draws:   a.draws,
		nchains: a.nchains,
		params:  a.params,
		data:    make([]float64, n),
		missing: make([]bool, n),
	}
}

// SetParamMissing marks every cell of one parameter as missing.
func (a *Array) SetParamMissing(param int) {
	base := param * a.nchains * a.draws
	for i := base; i < base+a.nchains*a.draws; i++ {
		a.missing[i] = true
	}
}

// Param returns the 2D view of one parameter.
func (a *Array) Param(param int) Slice {
	return Slice{arr: a, param: param}
}

// Slice is a draw × chain view of one parameter of an Array.
type Slice struct {
	arr   *Array
	param int
}

func (s Slice) Draws() int  { return s.arr.draws }
func (s Slice) Chains() int { return s.arr.nchains }

func (s Slice) At(draw, chain int) float64 {
	return s.arr.At(draw, chain, s.param)
}

func (s Slice) Missing(draw, chain int) bool {
	return s.arr.IsMissing(draw, chain, s.param)
}

// HasMissing reports whether any cell of the slice is missing.
func (s Slice) HasMissing() bool {
	base := s.param * s.arr.nchains * s.arr.draws
	for _, m := range s.arr.missing[base : base+s.arr.nchains*s.arr.draws] {
		if m {
			return true
		}
	}
	return false
}

// Flatten appends every cell value in draw-then-chain order to dst and
// returns the extended slice. The caller must have checked HasMissing.
func (s Slice) Flatten(dst []float64) []float64 {
	base := s.param * s.arr.nchains * s.arr.draws
	return append(dst, s.arr.data[base:base+s.arr.nchains*s.arr.draws]...)
}
