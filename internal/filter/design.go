package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-stream-decimator/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

// Smallest |Σ taps| accepted before normalization.
const minTapSum = 1e-12

// DesignLowpassFIR designs a windowed-sinc lowpass filter.
//
// The ideal impulse response sinc(x·c), with c = 2·cutoff/sampleRate and x
// the offset from the center tap, is multiplied by the window and scaled so
// the taps sum to exactly one. length must be odd and positive and cutoff
// must lie strictly between 0 and sampleRate/2; nothing is clamped.
func DesignLowpassFIR(length int, cutoff, sampleRate float64, w Window) (Filter, error) {
	if err := validateDesign(length, cutoff, sampleRate); err != nil {
		return Filter{}, err
	}
	if err := w.Validate(); err != nil {
		return Filter{}, err
	}

	taps := make([]float64, length)
	c := 2 * cutoff / sampleRate
	center := (length - 1) / 2
	for n := range taps {
		taps[n] = sinc(float64(n-center) * c)
	}
	w.Apply(taps)

	sum := f64.Sum(taps)
	if math.Abs(sum) < minTapSum {
		return Filter{}, fmt.Errorf("%w: windowed sinc has zero DC gain", ErrInvalidConfig)
	}
	f64.Scale(taps, taps, 1/sum)

	return Filter{taps: taps}, nil
}

// DesignLowpassKaiser designs a Kaiser-windowed lowpass whose length and β
// are derived from the stopband attenuation (dB) and transition width (Hz).
func DesignLowpassKaiser(attenuationDB, transitionWidth, cutoff, sampleRate float64) (Filter, error) {
	if attenuationDB <= 0 {
		return Filter{}, fmt.Errorf("%w: attenuation must be positive, got %g dB", ErrInvalidConfig, attenuationDB)
	}
	if sampleRate <= 0 {
		return Filter{}, fmt.Errorf("%w: sample rate must be positive, got %g", ErrInvalidConfig, sampleRate)
	}
	if transitionWidth <= 0 || transitionWidth >= sampleRate/2 {
		return Filter{}, fmt.Errorf("%w: transition width %g Hz outside (0, %g)", ErrInvalidConfig, transitionWidth, sampleRate/2)
	}
	length := mathutil.EstimateFilterLength(attenuationDB, transitionWidth/sampleRate)
	return DesignLowpassFIR(length, cutoff, sampleRate, Kaiser(mathutil.KaiserBeta(attenuationDB)))
}

func validateDesign(length int, cutoff, sampleRate float64) error {
	if length <= 0 {
		return fmt.Errorf("%w: tap count must be positive, got %d", ErrInvalidConfig, length)
	}
	if length%2 == 0 {
		return fmt.Errorf("%w: tap count must be odd, got %d", ErrInvalidConfig, length)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive, got %g", ErrInvalidConfig, sampleRate)
	}
	nyquist := sampleRate / 2
	if !(cutoff > 0 && cutoff < nyquist) {
		return fmt.Errorf("%w: cutoff %g Hz outside (0, %g)", ErrInvalidConfig, cutoff, nyquist)
	}
	return nil
}

// sinc is the normalized sinc, sin(πx)/(πx) with sinc(0) = 1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
