package filter

import (
	"math"
	"math/cmplx"
)

const (
	defaultResponsePoints = 512
	minMagnitude          = 1e-10
)

// Response holds a sampled frequency response from DC to Nyquist.
type Response struct {
	// Frequencies are normalized to the sample rate (0 to 0.5).
	Frequencies []float64
	Magnitude   []float64
	Phase       []float64
}

// ComputeFrequencyResponse evaluates the DTFT of taps at numPoints evenly
// spaced frequencies in [0, 0.5). numPoints <= 0 selects 512.
func ComputeFrequencyResponse(taps []float64, numPoints int) Response {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}
	r := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}
	for k := range numPoints {
		freq := float64(k) / float64(2*numPoints)
		h := evaluate(taps, freq)
		r.Frequencies[k] = freq
		r.Magnitude[k] = cmplx.Abs(h)
		r.Phase[k] = cmplx.Phase(h)
	}
	return r
}

// Response returns the complex response H(e^{jω}) at freqHz for sampleRate.
func (f Filter) Response(freqHz, sampleRate float64) complex128 {
	return evaluate(f.taps, freqHz/sampleRate)
}

// MagnitudeDB returns |H| in dB at freqHz.
func (f Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return MagnitudeDB(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// MagnitudeDB converts linear magnitude to decibels, flooring at -200 dB.
func MagnitudeDB(magnitude float64) float64 {
	return 20 * math.Log10(math.Max(magnitude, minMagnitude))
}

func evaluate(taps []float64, normFreq float64) complex128 {
	omega := 2 * math.Pi * normFreq
	var h complex128
	for n, c := range taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -omega*float64(n)))
	}
	return h
}
