// Package filter provides the FIR tap type and lowpass tap design used by the
// decimation engine.
package filter

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidConfig reports filter or decimation parameters that can never
// produce a valid design. It is not recoverable at the call site.
var ErrInvalidConfig = errors.New("invalid filter configuration")

// Filter is an immutable sequence of real FIR taps. The zero value is an
// empty filter and is rejected by every consumer.
type Filter struct {
	taps []float64
}

// New returns a Filter holding a copy of taps.
func New(taps []float64) (Filter, error) {
	if len(taps) == 0 {
		return Filter{}, fmt.Errorf("%w: filter needs at least one tap", ErrInvalidConfig)
	}
	for i, v := range taps {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Filter{}, fmt.Errorf("%w: tap %d is not finite", ErrInvalidConfig, i)
		}
	}
	c := make([]float64, len(taps))
	copy(c, taps)
	return Filter{taps: c}, nil
}

// Len returns the number of taps.
func (f Filter) Len() int {
	return len(f.taps)
}

// Taps returns a copy of the coefficients.
func (f Filter) Taps() []float64 {
	c := make([]float64, len(f.taps))
	copy(c, f.taps)
	return c
}

// Tap returns coefficient i.
func (f Filter) Tap(i int) float64 {
	return f.taps[i]
}

// Sum returns the DC gain of the filter.
func (f Filter) Sum() float64 {
	return floats.Sum(f.taps)
}

// Reversed returns the filter with its taps in reverse order.
func (f Filter) Reversed() Filter {
	r := f.Taps()
	floats.Reverse(r)
	return Filter{taps: r}
}

// GroupDelay returns the delay, in samples, of a linear-phase filter of this length.
func (f Filter) GroupDelay() float64 {
	if len(f.taps) == 0 {
		return 0
	}
	return float64(len(f.taps)-1) / 2
}

// IsSymmetric reports whether taps[i] == taps[n-1-i] within tol.
func (f Filter) IsSymmetric(tol float64) bool {
	n := len(f.taps)
	for i := range n / 2 {
		if math.Abs(f.taps[i]-f.taps[n-1-i]) > tol {
			return false
		}
	}
	return true
}
