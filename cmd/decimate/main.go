// Command decimate describes and exercises a decimator configuration: the
// designed filter, the multistage plan and the output of a test tone.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/cmplx"

	decimator "github.com/tphakala/go-stream-decimator"
)

func main() {
	// Command-line flags
	var (
		inputRate  = flag.Float64("input-rate", defaultInputRate, "Input sample rate in Hz")
		factor     = flag.Int("factor", defaultFactor, "Integer decimation factor")
		quality    = flag.String("quality", "medium", "Quality preset: low, medium, high, veryhigh")
		multistage = flag.Bool("multistage", false, "Split the factor into a cascade of stages")
		demo       = flag.Bool("demo", false, "Run a demonstration")
	)
	flag.Parse()

	if *demo {
		runDemo()
		return
	}

	config := &decimator.Config{
		InputRate:  *inputRate,
		Factor:     *factor,
		Quality:    decimator.QualitySpec{Preset: parseQuality(*quality)},
		Multistage: *multistage,
	}

	d, err := decimator.New[float64](config)
	if err != nil {
		log.Fatalf("Failed to create decimator: %v", err)
	}

	info := d.Info()
	fmt.Printf("Decimator created:\n")
	fmt.Printf("  Algorithm: %s\n", info.Algorithm)
	fmt.Printf("  Rate: %g Hz -> %g Hz (/%d)\n", *inputRate, d.OutputRate(), d.Factor())
	fmt.Printf("  Filter length: %d taps\n", info.FilterLength)
	fmt.Printf("  Latency: %d input samples\n", info.Latency)
	fmt.Printf("  SIMD: %s\n", info.SIMDType)

	if *multistage {
		plan, err := decimator.BuildPlan(config)
		if err != nil {
			log.Fatalf("Failed to build plan: %v", err)
		}
		fmt.Printf("\n%s", plan)
	}

	fmt.Println("\nProcessing test signal...")
	testSignal := generateTestSignal(testSignalSamples, *inputRate)
	var output []float64
	for i := 0; i < len(testSignal); i += testChunkSize {
		output = append(output, d.Process(testSignal[i:min(i+testChunkSize, len(testSignal))])...)
	}

	fmt.Printf("Input samples: %d\n", len(testSignal))
	fmt.Printf("Output samples: %d\n", len(output))
	fmt.Printf("Tone peak after settling: %.4f\n", peak(output[len(output)/2:]))
}

func parseQuality(s string) decimator.QualityPreset {
	switch s {
	case "low":
		return decimator.QualityLow
	case "medium":
		return decimator.QualityMedium
	case "high":
		return decimator.QualityHigh
	case "veryhigh", "very-high":
		return decimator.QualityVeryHigh
	default:
		return decimator.QualityMedium
	}
}

func generateTestSignal(samples int, sampleRate float64) []float64 {
	signal := make([]float64, samples)
	omega := 2 * math.Pi * testSignalFrequency / sampleRate
	for i := range signal {
		signal[i] = math.Sin(omega * float64(i))
	}
	return signal
}

func peak(x []float64) float64 {
	var m float64
	for _, v := range x {
		m = max(m, math.Abs(v))
	}
	return m
}

func runDemo() {
	fmt.Println("=== Stream Decimator Demo ===")

	// Demo 1: quality levels
	fmt.Println("\n1. Comparing Quality Levels")
	fmt.Println("---------------------------")

	cases := []struct {
		rate   float64
		factor int
		name   string
	}{
		{sampleRateDAT, 2, "48 kHz to 24 kHz"},
		{sampleRateDAT, 4, "48 kHz to 12 kHz"},
		{sampleRateHiRes, 6, "96 kHz to 16 kHz"},
	}
	qualities := []decimator.QualityPreset{
		decimator.QualityLow,
		decimator.QualityMedium,
		decimator.QualityHigh,
		decimator.QualityVeryHigh,
	}
	qualityNames := []string{"Low", "Medium", "High", "VeryHigh"}

	for _, c := range cases {
		fmt.Printf("\n%s (/%d):\n", c.name, c.factor)
		for i, q := range qualities {
			d, err := decimator.New[float64](&decimator.Config{
				InputRate: c.rate,
				Factor:    c.factor,
				Quality:   decimator.QualitySpec{Preset: q},
			})
			if err != nil {
				fmt.Printf("  %s: Error - %v\n", qualityNames[i], err)
				continue
			}
			info := d.Info()
			fmt.Printf("  %s: %d taps, %d samples latency\n", qualityNames[i], info.FilterLength, info.Latency)
		}
	}

	// Demo 2: single stage against a cascade
	fmt.Println("\n2. Single Stage vs Cascade")
	fmt.Println("--------------------------")

	for _, multistage := range []bool{false, true} {
		config := &decimator.Config{
			InputRate:  sampleRateSDR,
			Factor:     48,
			Quality:    decimator.QualitySpec{Preset: decimator.QualityHigh},
			Multistage: multistage,
		}
		d, err := decimator.New[complex64](config)
		if err != nil {
			fmt.Printf("  Error - %v\n", err)
			continue
		}
		info := d.Info()
		fmt.Printf("  %s: %d stage(s), %d taps total, %d samples latency\n",
			info.Algorithm, info.Stages, info.FilterLength, info.Latency)
	}

	// Demo 3: I/Q decimation of a complex tone
	fmt.Println("\n3. Complex I/Q Stream")
	fmt.Println("---------------------")

	iq := make([]complex128, testSignalSamples)
	omega := 2 * math.Pi * testSignalFrequency / sampleRateDAT
	for i := range iq {
		iq[i] = cmplx.Rect(1, omega*float64(i))
	}
	out, err := decimator.DecimateIQ(iq, sampleRateDAT, 4, decimator.QualityMedium)
	if err != nil {
		fmt.Printf("  Error - %v\n", err)
	} else {
		fmt.Printf("  %d I/Q samples -> %d, |z| = %.4f\n", len(iq), len(out), cmplx.Abs(out[len(out)/2]))
	}

	fmt.Println("\n=== Demo Complete ===")
}
