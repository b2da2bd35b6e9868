package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-stream-decimator/internal/mathutil"
	"gonum.org/v1/gonum/dsp/window"
)

// WindowType selects the smoothing window applied to the ideal sinc response.
type WindowType int

const (
	// WindowHamming is the default design window (~43 dB sidelobes).
	WindowHamming WindowType = iota
	// WindowRectangular applies no tapering.
	WindowRectangular
	// WindowHann is the raised-cosine window.
	WindowHann
	// WindowBlackman trades a wider main lobe for ~58 dB sidelobes.
	WindowBlackman
	// WindowBlackmanHarris is the 4-term Blackman-Harris window.
	WindowBlackmanHarris
	// WindowNuttall is the 4-term Nuttall window.
	WindowNuttall
	// WindowKaiser uses Window.Beta as the Kaiser β parameter.
	WindowKaiser
)

var windowNames = map[WindowType]string{
	WindowHamming:        "hamming",
	WindowRectangular:    "rectangular",
	WindowHann:           "hann",
	WindowBlackman:       "blackman",
	WindowBlackmanHarris: "blackman-harris",
	WindowNuttall:        "nuttall",
	WindowKaiser:         "kaiser",
}

// String returns the lowercase window name.
func (w WindowType) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return fmt.Sprintf("WindowType(%d)", int(w))
}

// ParseWindowType converts a name such as "hamming" into a WindowType.
func ParseWindowType(name string) (WindowType, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
	for t, n := range windowNames {
		if strings.ReplaceAll(n, "-", "") == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown window %q", ErrInvalidConfig, name)
}

// Window describes a design window. Beta is only read for WindowKaiser.
type Window struct {
	Type WindowType
	Beta float64
}

// Common windows.
var (
	Hamming     = Window{Type: WindowHamming}
	Rectangular = Window{Type: WindowRectangular}
	Hann        = Window{Type: WindowHann}
	Blackman    = Window{Type: WindowBlackman}
)

// Kaiser returns a Kaiser window with the given β.
func Kaiser(beta float64) Window {
	return Window{Type: WindowKaiser, Beta: beta}
}

// Validate checks the window parameters.
func (w Window) Validate() error {
	if _, ok := windowNames[w.Type]; !ok {
		return fmt.Errorf("%w: unknown window type %d", ErrInvalidConfig, int(w.Type))
	}
	if w.Type == WindowKaiser && (w.Beta < 0 || math.IsNaN(w.Beta)) {
		return fmt.Errorf("%w: kaiser beta must be >= 0, got %g", ErrInvalidConfig, w.Beta)
	}
	return nil
}

// Apply multiplies seq in place by the window and returns it.
// A single-element sequence is left unchanged.
func (w Window) Apply(seq []float64) []float64 {
	if len(seq) < 2 {
		return seq
	}
	switch w.Type {
	case WindowRectangular:
		return window.Rectangular(seq)
	case WindowHann:
		return window.Hann(seq)
	case WindowBlackman:
		return window.Blackman(seq)
	case WindowBlackmanHarris:
		return window.BlackmanHarris(seq)
	case WindowNuttall:
		return window.Nuttall(seq)
	case WindowKaiser:
		return applyKaiser(seq, w.Beta)
	default:
		return window.Hamming(seq)
	}
}

// Coefficients returns the window weights for the given length.
func (w Window) Coefficients(length int) []float64 {
	if length < 1 {
		return []float64{}
	}
	seq := make([]float64, length)
	for i := range seq {
		seq[i] = 1
	}
	return w.Apply(seq)
}

// applyKaiser weights seq by w[n] = I₀(β·sqrt(1 - ((n-α)/α)²)) / I₀(β), α = (N-1)/2.
func applyKaiser(seq []float64, beta float64) []float64 {
	alpha := float64(len(seq)-1) / 2
	norm := mathutil.BesselI0(beta)
	for n := range seq {
		x := (float64(n) - alpha) / alpha
		seq[n] *= mathutil.BesselI0(beta*math.Sqrt(math.Max(0, 1-x*x))) / norm
	}
	return seq
}
