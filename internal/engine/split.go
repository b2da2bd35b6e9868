package engine

import (
	"fmt"

	"github.com/tphakala/go-stream-decimator/internal/filter"
)

// SplitComplex is an I/Q stream stored as two equal-length real branches.
// Values are owned copies; converting to or from interleaved form copies.
type SplitComplex struct {
	Re []float64
	Im []float64
}

// NewSplitComplex copies re and im into a SplitComplex.
func NewSplitComplex(re, im []float64) (SplitComplex, error) {
	if len(re) != len(im) {
		return SplitComplex{}, fmt.Errorf("%w: real branch has %d samples, imaginary %d", ErrBufferSize, len(re), len(im))
	}
	s := SplitComplex{Re: make([]float64, len(re)), Im: make([]float64, len(im))}
	copy(s.Re, re)
	copy(s.Im, im)
	return s, nil
}

// SplitOf converts interleaved complex samples into split form.
func SplitOf(x []complex128) SplitComplex {
	s := SplitComplex{Re: make([]float64, len(x)), Im: make([]float64, len(x))}
	for i, v := range x {
		s.Re[i] = real(v)
		s.Im[i] = imag(v)
	}
	return s
}

// Len returns the number of complex samples.
func (s SplitComplex) Len() int {
	return len(s.Re)
}

// Interleave converts back to complex samples.
func (s SplitComplex) Interleave() []complex128 {
	out := make([]complex128, len(s.Re))
	for i := range out {
		out[i] = complex(s.Re[i], s.Im[i])
	}
	return out
}

func (s SplitComplex) check() {
	if len(s.Re) != len(s.Im) {
		panic(fmt.Sprintf("engine: split complex branches differ: %d vs %d", len(s.Re), len(s.Im)))
	}
}

// DecimateSplit decimates both branches with the real kernels.
func DecimateSplit(s SplitComplex, f filter.Filter, factor int) SplitComplex {
	s.check()
	return SplitComplex{
		Re: Decimate(s.Re, f, factor),
		Im: Decimate(s.Im, f, factor),
	}
}

// SplitStreamingDecimator is the streaming counterpart of DecimateSplit.
// Both branches always receive equal-length chunks, so their tails and
// phase stay in lockstep.
type SplitStreamingDecimator struct {
	re *StreamingDecimator[float64]
	im *StreamingDecimator[float64]
}

// NewSplitStreamingDecimator returns a split-complex decimator with empty state.
func NewSplitStreamingDecimator(f filter.Filter, factor int) (*SplitStreamingDecimator, error) {
	re, err := NewStreamingDecimator[float64](f, factor)
	if err != nil {
		return nil, err
	}
	im, err := NewStreamingDecimator[float64](f, factor)
	if err != nil {
		return nil, err
	}
	return &SplitStreamingDecimator{re: re, im: im}, nil
}

// Process decimates one split-complex chunk. Branches of unequal length are
// rejected with ErrBufferSize before any state changes.
func (d *SplitStreamingDecimator) Process(chunk SplitComplex) (SplitComplex, error) {
	if len(chunk.Re) != len(chunk.Im) {
		return SplitComplex{}, fmt.Errorf("%w: real branch has %d samples, imaginary %d", ErrBufferSize, len(chunk.Re), len(chunk.Im))
	}
	return SplitComplex{Re: d.re.Process(chunk.Re), Im: d.im.Process(chunk.Im)}, nil
}

// Reset clears both branches.
func (d *SplitStreamingDecimator) Reset() {
	d.re.Reset()
	d.im.Reset()
}
