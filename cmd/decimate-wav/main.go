// Command decimate-wav lowpass filters and decimates a WAV file by an
// integer factor.
//
// Usage:
//
//	decimate-wav -factor 4 input.wav output.wav
//	decimate-wav -factor 6 -quality high -multistage input.wav output.wav
//	decimate-wav -factor 8 -taps 127 -window blackman input.wav output.wav
//	decimate-wav -factor 10 -iq capture.wav baseband.wav   # 2-channel I/Q
//
// Mono files are decimated as real audio. A 2-channel file is only accepted
// with -iq, where channel 0 is I and channel 1 is Q of one complex stream.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	decimator "github.com/tphakala/go-stream-decimator"
	"github.com/tphakala/go-stream-decimator/internal/filter"
)

const (
	// Buffer size for processing (number of frames per chunk)
	bufferSize = 65536

	// Channel count constants
	monoChannels = 1
	iqChannels   = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%

	// CLI defaults
	defaultFactor   = 2
	minRequiredArgs = 2
	percentScale    = 100

	// WAV audio format tag for integer PCM
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// options collects the parsed command line.
type options struct {
	inputPath  string
	outputPath string
	factor     int
	quality    decimator.QualityPreset
	taps       int
	cutoff     float64
	window     filter.Window
	multistage bool
	iq         bool
	fast       bool
	parallel   bool
	chunk      int
	verbose    bool
}

func run() error {
	factor := flag.Int("factor", defaultFactor, "Integer decimation factor")
	quality := flag.String("quality", "medium", "Quality preset: low, medium, high, veryhigh")
	taps := flag.Int("taps", 0, "Explicit odd filter length (0 derives it from -quality)")
	cutoff := flag.Float64("cutoff", 0, "Lowpass cutoff in Hz (0 derives it from -quality)")
	windowName := flag.String("window", "hamming", "Window for -taps: hamming, hann, blackman, blackmanharris, nuttall, rectangular, kaiser")
	beta := flag.Float64("beta", 8.6, "Kaiser window beta (with -window kaiser)")
	multistage := flag.Bool("multistage", false, "Split the factor into a cascade of smaller stages")
	iq := flag.Bool("iq", false, "Treat a 2-channel file as one complex I/Q stream")
	fast := flag.Bool("fast", false, "Use float32/complex64 precision")
	parallel := flag.Bool("parallel", true, "Process I and Q branches concurrently")
	chunk := flag.Int("chunk", bufferSize, "Frames read per processing call")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -factor 4 input.wav output.wav        # 48 kHz -> 12 kHz\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -factor 10 -iq capture.wav base.wav   # decimate I/Q\n", os.Args[0])
		return errors.New("insufficient arguments")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	preset, err := parseQuality(*quality)
	if err != nil {
		return err
	}
	win, err := parseWindow(*windowName, *beta)
	if err != nil {
		return err
	}
	if *chunk < 1 {
		return fmt.Errorf("chunk size must be positive, got %d", *chunk)
	}

	opts := options{
		inputPath:  args[0],
		outputPath: args[1],
		factor:     *factor,
		quality:    preset,
		taps:       *taps,
		cutoff:     *cutoff,
		window:     win,
		multistage: *multistage,
		iq:         *iq,
		fast:       *fast,
		parallel:   *parallel,
		chunk:      *chunk,
		verbose:    *verbose,
	}

	if opts.verbose {
		log.Printf("Input: %s", opts.inputPath)
		log.Printf("Output: %s", opts.outputPath)
		log.Printf("Factor: %d", opts.factor)
		log.Printf("Quality: %s", *quality)
		if opts.taps > 0 {
			log.Printf("Filter: %d taps, %s window", opts.taps, opts.window.Type)
		}
		if opts.fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
	}

	start := time.Now()
	stats, err := decimateWAV(opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Decimated %s -> %s\n", filepath.Base(opts.inputPath), filepath.Base(opts.outputPath))
	fmt.Printf("  %d Hz -> %d Hz (/%d, %s, %d-bit)\n",
		stats.inputRate, stats.outputRate, opts.factor, stats.layout, stats.bitDepth)
	fmt.Printf("  %d frames -> %d frames, %s\n", stats.inputFrames, stats.outputFrames, stats.algorithm)
	if elapsed > 0 && stats.inputRate > 0 {
		fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
			elapsed.Seconds(),
			float64(stats.inputFrames)/float64(stats.inputRate)/elapsed.Seconds())
	}
	return nil
}

type decimateStats struct {
	inputRate    int
	outputRate   int
	bitDepth     int
	layout       string
	algorithm    string
	inputFrames  int64
	outputFrames int64
}

func parseQuality(q string) (decimator.QualityPreset, error) {
	switch strings.ToLower(q) {
	case "low":
		return decimator.QualityLow, nil
	case "medium", "":
		return decimator.QualityMedium, nil
	case "high":
		return decimator.QualityHigh, nil
	case "veryhigh", "very-high":
		return decimator.QualityVeryHigh, nil
	default:
		return 0, fmt.Errorf("unknown quality %q", q)
	}
}

func parseWindow(name string, beta float64) (filter.Window, error) {
	t, err := filter.ParseWindowType(name)
	if err != nil {
		return filter.Window{}, err
	}
	if t == filter.WindowKaiser {
		return filter.Kaiser(beta), nil
	}
	return filter.Window{Type: t}, nil
}

// decimateWAV streams the input file through the decimator chunk by chunk.
func decimateWAV(opts options) (stats *decimateStats, err error) {
	// 1. Open and validate input
	input, err := openWAVInput(opts.inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	layout, err := checkLayout(input.channels, opts.iq)
	if err != nil {
		return nil, err
	}

	outputRate := int(math.Round(float64(input.rate) / float64(opts.factor)))
	if input.rate%opts.factor != 0 {
		log.Printf("Warning: %d Hz is not divisible by %d; output header rounded to %d Hz",
			input.rate, opts.factor, outputRate)
	}

	// 2. Create decimator
	cfg := &decimator.Config{
		InputRate:      float64(input.rate),
		Factor:         opts.factor,
		Quality:        decimator.QualitySpec{Preset: opts.quality},
		Taps:           opts.taps,
		Cutoff:         opts.cutoff,
		Window:         opts.window,
		Multistage:     opts.multistage,
		EnableParallel: opts.parallel,
	}
	proc, err := newProcessor(cfg, layout, opts.fast)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		log.Printf("Decimator: %s, %d taps, latency %d samples",
			proc.info().Algorithm, proc.info().FilterLength, proc.info().Latency)
	}

	// 3. Create output writer
	output, err := createWAVOutput(opts.outputPath, outputRate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the encoder
	// patches the WAV header on close)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	// 4. Initialize processing buffers
	buffers := newDecimateBuffers(input.channels, input.bitDepth, opts.chunk, input.format)

	stats = &decimateStats{
		inputRate:  input.rate,
		outputRate: outputRate,
		bitDepth:   input.bitDepth,
		layout:     layout.String(),
		algorithm:  proc.info().Algorithm,
	}
	progress := newProgressTracker(input.totalFrames, opts.verbose)

	// 5. Main processing loop
	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n / input.channels
		buffers.intBuffer.Data = buffers.intBuffer.Data[:frames*input.channels]
		stats.inputFrames += int64(frames)

		deinterleaveInto(buffers.intBuffer.Data, buffers.channelBufs, input.channels, frames, buffers.invMaxVal)

		chunk := make([][]float64, input.channels)
		for ch := range chunk {
			chunk[ch] = buffers.channelBufs[ch][:frames]
		}
		decimated, err := proc.process(chunk)
		if err != nil {
			return nil, err
		}

		outLen := interleaveInto(decimated, buffers.outputIntBuf, buffers.maxVal)
		if outLen > 0 {
			stats.outputFrames += int64(outLen / input.channels)
			if err := output.WriteSamples(buffers.outputIntBuf[:outLen]); err != nil {
				return nil, fmt.Errorf("failed to write audio data: %w", err)
			}
		}

		progress.reportIfNeeded(stats.inputFrames)
		buffers.intBuffer.Data = buffers.intBuffer.Data[:cap(buffers.intBuffer.Data)]
	}

	return stats, nil
}
