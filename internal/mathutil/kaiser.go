// Package mathutil holds the special functions behind Kaiser window design.
package mathutil

import (
	"math"
)

// Abramowitz & Stegun 9.8.1 / 9.8.2 polynomial fits for I₀, highest order last.
var (
	i0SmallPoly = [...]float64{1.0, 3.5156229, 3.0899424, 1.2067492, 0.2659732, 0.360768e-1, 0.45813e-2}
	i0LargePoly = [...]float64{
		0.39894228, 0.1328592e-1, 0.225319e-2, -0.157565e-2, 0.916281e-2,
		-0.2057706e-1, 0.2635537e-1, -0.1647633e-1, 0.392377e-2,
	}
)

const (
	// |x| below which the small-argument series is used.
	i0Crossover = 3.75

	// Kaiser & Schafer empirical β formula breakpoints (dB).
	kaiserStrongAtten = 50.0
	kaiserWeakAtten   = 21.0

	// Length estimate bounds.
	minKaiserLength = 3
	maxKaiserLength = 8191

	fallbackTransition = 0.01
)

// horner evaluates c[0] + t*(c[1] + t*(c[2] + ...)).
func horner(c []float64, t float64) float64 {
	acc := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc*t + c[i]
	}
	return acc
}

// BesselI0 returns the zeroth-order modified Bessel function of the first kind.
// Accuracy is about 1e-7 relative, which is ample for window design.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < i0Crossover {
		t := ax / i0Crossover
		return horner(i0SmallPoly[:], t*t)
	}
	return math.Exp(ax) / math.Sqrt(ax) * horner(i0LargePoly[:], i0Crossover/ax)
}

// KaiserBeta maps a stopband attenuation in dB to the Kaiser window β.
func KaiserBeta(attenuationDB float64) float64 {
	switch {
	case attenuationDB > kaiserStrongAtten:
		return 0.1102 * (attenuationDB - 8.7)
	case attenuationDB >= kaiserWeakAtten:
		d := attenuationDB - kaiserWeakAtten
		return 0.5842*math.Pow(d, 0.4) + 0.07886*d
	default:
		return 0
	}
}

// KaiserAttenuation is the approximate inverse of KaiserBeta for β > 0.
func KaiserAttenuation(beta float64) float64 {
	if beta <= 0 {
		return 0
	}
	return 8.7 + beta/0.1102
}

// EstimateFilterLength returns an odd tap count reaching attenuationDB with
// the given transition width, expressed as a fraction of the sample rate.
//
//	N ≈ (A - 8) / (2.285 · 2π · Δf)
func EstimateFilterLength(attenuationDB, transitionWidth float64) int {
	if transitionWidth <= 0 {
		transitionWidth = fallbackTransition
	}
	n := int(math.Ceil((attenuationDB - 8) / (2.285 * 2 * math.Pi * transitionWidth)))
	n |= 1
	return min(max(n, minKaiserLength), maxKaiserLength)
}
