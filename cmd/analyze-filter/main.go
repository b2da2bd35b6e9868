// Command analyze-filter designs a lowpass FIR and prints its taps, DC gain,
// symmetry and magnitude response.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/tphakala/go-stream-decimator/internal/filter"
)

const (
	// Filter design defaults
	defaultLength     = 63
	defaultCutoff     = 4000.0
	defaultSampleRate = 48000.0
	defaultBeta       = 8.6

	// Display limits
	defaultPoints   = 16
	symmetryTol     = 1e-12
	responsePoints  = 1024
	stopbandMarginF = 1.5 // stopband checked from this multiple of the cutoff
)

func main() {
	var (
		length      = flag.Int("length", defaultLength, "Odd filter length")
		cutoff      = flag.Float64("cutoff", defaultCutoff, "Cutoff frequency in Hz")
		rate        = flag.Float64("rate", defaultSampleRate, "Sample rate in Hz")
		windowName  = flag.String("window", "hamming", "Window: hamming, hann, blackman, blackmanharris, nuttall, rectangular, kaiser")
		beta        = flag.Float64("beta", defaultBeta, "Kaiser window beta")
		attenuation = flag.Float64("attenuation", 0, "Design with a Kaiser window for this stopband attenuation in dB (overrides -length)")
		transition  = flag.Float64("transition", 0, "Transition width in Hz for -attenuation")
		points      = flag.Int("points", defaultPoints, "Response rows to print")
		showTaps    = flag.Bool("taps", false, "Print every tap")
	)
	flag.Parse()

	f, err := design(*length, *cutoff, *rate, *windowName, *beta, *attenuation, *transition)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Lowpass FIR Analysis ===")
	fmt.Printf("  Length: %d taps\n", f.Len())
	fmt.Printf("  Cutoff: %.1f Hz at %.0f Hz\n", *cutoff, *rate)
	fmt.Printf("  DC gain: %.12f\n", f.Sum())
	fmt.Printf("  Symmetric: %v\n", f.IsSymmetric(symmetryTol))
	fmt.Printf("  Group delay: %.1f samples\n", f.GroupDelay())

	if *showTaps {
		fmt.Println("\nTaps:")
		for i, h := range f.Taps() {
			fmt.Printf("  h[%3d] = % .12e\n", i, h)
		}
	}

	fmt.Println("\nMagnitude response:")
	step := *rate / 2 / float64(max(*points, 1))
	for k := range *points {
		freq := float64(k) * step
		fmt.Printf("  %9.1f Hz: %8.2f dB\n", freq, f.MagnitudeDB(freq, *rate))
	}

	// Worst stopband leak beyond the margin
	resp := filter.ComputeFrequencyResponse(f.Taps(), responsePoints)
	worst := 0.0
	for i, fn := range resp.Frequencies {
		if fn*(*rate) >= stopbandMarginF*(*cutoff) {
			worst = max(worst, resp.Magnitude[i])
		}
	}
	fmt.Printf("\nPeak stopband level above %.0f Hz: %.2f dB\n",
		stopbandMarginF*(*cutoff), filter.MagnitudeDB(worst))
}

func design(length int, cutoff, rate float64, windowName string, beta, attenuation, transition float64) (filter.Filter, error) {
	if attenuation > 0 {
		if transition <= 0 {
			return filter.Filter{}, errors.New("-attenuation needs a positive -transition")
		}
		return filter.DesignLowpassKaiser(attenuation, transition, cutoff, rate)
	}

	t, err := filter.ParseWindowType(windowName)
	if err != nil {
		return filter.Filter{}, err
	}
	w := filter.Window{Type: t}
	if t == filter.WindowKaiser {
		w = filter.Kaiser(beta)
	}
	return filter.DesignLowpassFIR(length, cutoff, rate, w)
}
