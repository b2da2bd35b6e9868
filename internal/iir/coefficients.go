// Package iir implements streaming biquad (second-order section) cascades
// on top of github.com/cwbudde/algo-dsp.
//
// Each branch keeps its delay lines across Process calls, so a stream can
// be filtered in arbitrary chunks and the output equals filtering the
// concatenated stream in one call.
package iir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// ErrInvalidDesign reports unusable IIR design parameters.
var ErrInvalidDesign = errors.New("invalid IIR design")

// Coefficients holds one second-order section normalized so a0 = 1, in the
// Direct Form II Transposed convention of biquad.Section.
type Coefficients = biquad.Coefficients

// Normalize divides raw coefficients by a0.
func Normalize(b0, b1, b2, a0, a1, a2 float64) (Coefficients, error) {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}, fmt.Errorf("%w: a0 must be finite and non-zero", ErrInvalidDesign)
	}
	return Coefficients{B0: b0 / a0, B1: b1 / a0, B2: b2 / a0, A1: a1 / a0, A2: a2 / a0}, nil
}

// Lowpass returns the RBJ cookbook second-order lowpass at freq Hz with
// quality factor q.
func Lowpass(sampleRate, freq, q float64) (Coefficients, error) {
	if err := validateRBJ(sampleRate, freq, q); err != nil {
		return Coefficients{}, err
	}
	return design.Lowpass(freq, q, sampleRate), nil
}

// Highpass returns the RBJ cookbook second-order highpass.
func Highpass(sampleRate, freq, q float64) (Coefficients, error) {
	if err := validateRBJ(sampleRate, freq, q); err != nil {
		return Coefficients{}, err
	}
	return design.Highpass(freq, q, sampleRate), nil
}

func validateRBJ(sampleRate, freq, q float64) error {
	if err := validateBand(sampleRate, freq); err != nil {
		return err
	}
	if !(q > 0) || math.IsInf(q, 0) {
		return fmt.Errorf("%w: q must be positive, got %g", ErrInvalidDesign, q)
	}
	return nil
}

func validateBand(sampleRate, freq float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive, got %g", ErrInvalidDesign, sampleRate)
	}
	if !(freq > 0) || freq >= sampleRate/2 {
		return fmt.Errorf("%w: frequency %g Hz outside (0, %g)", ErrInvalidDesign, freq, sampleRate/2)
	}
	return nil
}

// Stable reports whether both poles of c lie strictly inside the unit circle.
func Stable(c Coefficients) bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}
