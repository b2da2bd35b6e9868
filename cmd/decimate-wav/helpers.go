package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	decimator "github.com/tphakala/go-stream-decimator"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	if getMaxValue(bitDepth) == 0 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32)", bitDepth)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: int64(duration.Seconds() * float64(format.SampleRate)),
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// streamLayout says how WAV channels map onto sample streams.
type streamLayout int

const (
	layoutMono streamLayout = iota
	layoutIQ
)

func (l streamLayout) String() string {
	if l == layoutIQ {
		return "I/Q"
	}
	return "mono"
}

// checkLayout accepts mono audio, or exactly two channels flagged as I/Q.
func checkLayout(channels int, iq bool) (streamLayout, error) {
	switch {
	case channels == monoChannels && !iq:
		return layoutMono, nil
	case channels == iqChannels && iq:
		return layoutIQ, nil
	case iq:
		return 0, fmt.Errorf("-iq needs a 2-channel file, got %d channels", channels)
	default:
		return 0, fmt.Errorf("%d-channel audio is not supported; pass -iq for a 2-channel I/Q file", channels)
	}
}

// processor decimates one chunk of per-channel samples.
type processor interface {
	process(channels [][]float64) ([][]float64, error)
	info() decimator.Info
}

// newProcessor picks the stream type for the layout and precision.
func newProcessor(cfg *decimator.Config, layout streamLayout, fast bool) (processor, error) {
	switch {
	case layout == layoutMono && fast:
		return newRealProcessor[float32](cfg)
	case layout == layoutMono:
		return newRealProcessor[float64](cfg)
	case fast:
		return newComplexProcessor(cfg)
	default:
		return newSplitProcessor(cfg)
	}
}

// Float constraint for real sample streams.
type Float interface {
	float32 | float64
}

// realProcessor decimates mono audio.
type realProcessor[F Float] struct {
	d   *decimator.Decimator[F]
	buf []F
}

func newRealProcessor[F Float](cfg *decimator.Config) (*realProcessor[F], error) {
	d, err := decimator.New[F](cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create decimator: %w", err)
	}
	return &realProcessor[F]{d: d}, nil
}

func (p *realProcessor[F]) process(channels [][]float64) ([][]float64, error) {
	in := channels[0]
	if cap(p.buf) < len(in) {
		p.buf = make([]F, len(in))
	}
	p.buf = p.buf[:len(in)]
	for i, v := range in {
		p.buf[i] = F(v)
	}

	out := p.d.Process(p.buf)
	res := make([]float64, len(out))
	for i, v := range out {
		res[i] = float64(v)
	}
	return [][]float64{res}, nil
}

func (p *realProcessor[F]) info() decimator.Info {
	return p.d.Info()
}

// complexProcessor decimates I/Q as interleaved complex64.
type complexProcessor struct {
	d   *decimator.Decimator[complex64]
	buf []complex64
}

func newComplexProcessor(cfg *decimator.Config) (*complexProcessor, error) {
	d, err := decimator.New[complex64](cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create decimator: %w", err)
	}
	return &complexProcessor{d: d}, nil
}

func (p *complexProcessor) process(channels [][]float64) ([][]float64, error) {
	re, im := channels[0], channels[1]
	if cap(p.buf) < len(re) {
		p.buf = make([]complex64, len(re))
	}
	p.buf = p.buf[:len(re)]
	for i := range re {
		p.buf[i] = complex(float32(re[i]), float32(im[i]))
	}

	out := p.d.Process(p.buf)
	i, q := make([]float64, len(out)), make([]float64, len(out))
	for k, v := range out {
		i[k], q[k] = float64(real(v)), float64(imag(v))
	}
	return [][]float64{i, q}, nil
}

func (p *complexProcessor) info() decimator.Info {
	return p.d.Info()
}

// splitProcessor decimates I/Q as two float64 branches, optionally in parallel.
type splitProcessor struct {
	d *decimator.IQDecimator
}

func newSplitProcessor(cfg *decimator.Config) (*splitProcessor, error) {
	d, err := decimator.NewIQ(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create decimator: %w", err)
	}
	return &splitProcessor{d: d}, nil
}

func (p *splitProcessor) process(channels [][]float64) ([][]float64, error) {
	out, err := p.d.Process(decimator.SplitComplex{Re: channels[0], Im: channels[1]})
	if err != nil {
		return nil, fmt.Errorf("decimation failed: %w", err)
	}
	return [][]float64{out.Re, out.Im}, nil
}

func (p *splitProcessor) info() decimator.Info {
	return p.d.Info()
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file     *os.File
	encoder  *wav.Encoder
	format   *audio.Format
	bitDepth int
}

// createWAVOutput creates the output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:     outputFile,
		encoder:  wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		format:   &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		bitDepth: bitDepth,
	}, nil
}

// WriteSamples writes interleaved integer samples.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	return w.encoder.Write(&audio.IntBuffer{
		Data:           samples,
		Format:         w.format,
		SourceBitDepth: w.bitDepth,
	})
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// decimateBuffers holds all preallocated buffers for decimation.
type decimateBuffers struct {
	intBuffer    *audio.IntBuffer
	channelBufs  [][]float64
	outputIntBuf []int
	invMaxVal    float64
	maxVal       float64
}

// newDecimateBuffers creates and preallocates all processing buffers.
// A call never yields more output frames than input frames, so the output
// buffer matches the input buffer.
func newDecimateBuffers(channels, bitDepth, frames int, format *audio.Format) *decimateBuffers {
	channelBufs := make([][]float64, channels)
	for ch := range channels {
		channelBufs[ch] = make([]float64, frames)
	}

	maxVal := getMaxValue(bitDepth)
	return &decimateBuffers{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, frames*channels),
			Format: format,
		},
		channelBufs:  channelBufs,
		outputIntBuf: make([]int, frames*channels),
		invMaxVal:    1.0 / maxVal,
		maxVal:       maxVal,
	}
}

// getMaxValue returns the maximum sample value for the given bit depth,
// or 0 if the depth is unsupported.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return 0
	}
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// deinterleaveInto converts interleaved int samples into preallocated
// per-channel buffers normalized to [-1, 1].
func deinterleaveInto(data []int, channelBufs [][]float64, numChannels, frames int, invMaxVal float64) {
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range frames {
			buf[i] = float64(data[i]) * invMaxVal
		}
		return
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = float64(data[base+ch]) * invMaxVal
		}
	}
}

// interleaveInto converts per-channel samples into a preallocated int
// buffer, clamping to [-1, 1]. Returns the number of elements written, or 0
// if dst is too small.
func interleaveInto(channels [][]float64, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	frames := len(channels[0])
	total := frames * numChannels
	if len(dst) < total {
		return 0
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			dst[base+ch] = int(clamp(channels[ch][i]) * maxVal)
		}
	}
	return total
}

func clamp(v float64) float64 {
	return max(-1, min(1, v))
}
