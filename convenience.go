package decimator

import (
	"github.com/tphakala/go-stream-decimator/internal/engine"
	"github.com/tphakala/go-stream-decimator/internal/filter"
	"github.com/tphakala/go-stream-decimator/internal/iir"
)

// Filter is an immutable set of real FIR taps.
type Filter = filter.Filter

// Window selects the window applied to a windowed-sinc design.
type Window = filter.Window

// Windows for DesignLowpassFIR. Use filter.Kaiser via KaiserWindow for a
// Kaiser window with an explicit β.
var (
	Hamming     = filter.Hamming
	Rectangular = filter.Rectangular
	Hann        = filter.Hann
	Blackman    = filter.Blackman
)

// KaiserWindow returns a Kaiser window with shape parameter beta.
func KaiserWindow(beta float64) Window {
	return filter.Kaiser(beta)
}

// StreamingDecimator decimates one stream delivered in arbitrary chunks.
type StreamingDecimator[S Sample] = engine.StreamingDecimator[S]

// StreamingFIR applies a causal FIR filter to one stream without decimation.
type StreamingFIR[S Sample] = engine.StreamingFIR[S]

// IIRCascade is a streaming cascade of biquad sections.
type IIRCascade[S Sample] = iir.Cascade[S]

// NewFilter copies taps into a Filter.
func NewFilter(taps []float64) (Filter, error) {
	return filter.New(taps)
}

// DesignLowpassFIR designs an odd-length windowed-sinc lowpass with unity
// DC gain. cutoff must lie strictly between 0 and sampleRate/2.
func DesignLowpassFIR(length int, cutoff, sampleRate float64, w Window) (Filter, error) {
	return filter.DesignLowpassFIR(length, cutoff, sampleRate, w)
}

// Decimate filters samples with f and keeps every factor-th output.
// It panics if factor < 1 or f is empty.
func Decimate[S Sample](samples []S, f Filter, factor int) []S {
	return engine.Decimate(samples, f, factor)
}

// DecimateInto is Decimate writing into dst; a dst of the wrong length
// returns ErrBufferSize.
func DecimateInto[S Sample](dst, samples []S, f Filter, factor int) (int, error) {
	return engine.DecimateInto(dst, samples, f, factor)
}

// NewStreamingDecimator creates a streaming decimator around a given filter.
func NewStreamingDecimator[S Sample](f Filter, factor int) (*StreamingDecimator[S], error) {
	return engine.NewStreamingDecimator[S](f, factor)
}

// NewStreamingFIR creates a zero-state streaming FIR filter.
func NewStreamingFIR[S Sample](f Filter) (*StreamingFIR[S], error) {
	return engine.NewStreamingFIR[S](f)
}

// FiltFilt applies f forward and backward over the whole of buf, giving a
// zero-phase result of the same length.
func FiltFilt[S Sample](f Filter, buf []S) []S {
	return engine.FiltFilt(f, buf)
}

// NewButterworthLowpass creates a streaming Butterworth lowpass of the given
// order. Odd orders end with a first-order section.
func NewButterworthLowpass[S Sample](order int, cutoff, sampleRate float64) (*IIRCascade[S], error) {
	sections, err := iir.DesignButterworthLowpass(order, cutoff, sampleRate)
	if err != nil {
		return nil, err
	}
	return iir.NewCascade[S](sections...)
}

// DecimateMono decimates a complete mono signal in one call.
func DecimateMono(input []float64, inputRate float64, factor int, quality QualityPreset) ([]float64, error) {
	return decimateAll(input, inputRate, factor, quality)
}

// DecimateMonoFloat32 is DecimateMono for float32 samples.
func DecimateMonoFloat32(input []float32, inputRate float64, factor int, quality QualityPreset) ([]float32, error) {
	return decimateAll(input, inputRate, factor, quality)
}

// DecimateIQ decimates a complete interleaved I/Q signal in one call.
func DecimateIQ(input []complex128, inputRate float64, factor int, quality QualityPreset) ([]complex128, error) {
	return decimateAll(input, inputRate, factor, quality)
}

func decimateAll[S Sample](input []S, inputRate float64, factor int, quality QualityPreset) ([]S, error) {
	cfg := &Config{
		InputRate: inputRate,
		Factor:    factor,
		Quality:   QualitySpec{Preset: quality},
	}
	f, err := cfg.DesignFilter()
	if err != nil {
		return nil, err
	}
	return engine.Decimate(input, f, factor), nil
}
