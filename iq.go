package decimator

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-stream-decimator/internal/engine"
)

// SplitComplex is an I/Q stream held as separate real and imaginary slices.
type SplitComplex = engine.SplitComplex

// NewSplitComplex copies re and im into a SplitComplex; lengths must match.
func NewSplitComplex(re, im []float64) (SplitComplex, error) {
	return engine.NewSplitComplex(re, im)
}

// SplitOf converts interleaved complex samples to split form.
func SplitOf(x []complex128) SplitComplex {
	return engine.SplitOf(x)
}

// IQDecimator decimates split-complex I/Q streams. The I and Q branches
// run through independent real decimators with identical filters.
type IQDecimator struct {
	branches [iqBranches]*Decimator[float64]
	parallel bool
}

// NewIQ creates an I/Q decimator. With EnableParallel the two branches are
// processed concurrently on each call.
func NewIQ(config *Config) (*IQDecimator, error) {
	d := &IQDecimator{}
	for i := range d.branches {
		b, err := New[float64](config)
		if err != nil {
			return nil, err
		}
		d.branches[i] = b
	}
	d.parallel = config.EnableParallel
	return d, nil
}

// Process decimates one chunk. Branches of unequal length are rejected
// before any state changes.
func (d *IQDecimator) Process(chunk SplitComplex) (SplitComplex, error) {
	if len(chunk.Re) != len(chunk.Im) {
		return SplitComplex{}, fmt.Errorf("%w: I has %d samples, Q has %d", ErrBufferSize, len(chunk.Re), len(chunk.Im))
	}
	re, im := d.processBranches(chunk.Re, chunk.Im)
	return SplitComplex{Re: re, Im: im}, nil
}

// ProcessInterleaved decimates interleaved complex samples.
func (d *IQDecimator) ProcessInterleaved(chunk []complex128) []complex128 {
	split := engine.SplitOf(chunk)
	re, im := d.processBranches(split.Re, split.Im)
	return SplitComplex{Re: re, Im: im}.Interleave()
}

// processBranches runs equal-length I and Q slices through their decimators.
func (d *IQDecimator) processBranches(re, im []float64) (outRe, outIm []float64) {
	in := [iqBranches][]float64{re, im}
	var out [iqBranches][]float64

	if !d.parallel {
		for i, b := range d.branches {
			out[i] = b.Process(in[i])
		}
		return out[0], out[1]
	}

	var wg sync.WaitGroup
	for i, b := range d.branches {
		wg.Add(1)
		go func(branch int, dec *Decimator[float64]) {
			defer wg.Done()
			out[branch] = dec.Process(in[branch])
		}(i, b)
	}
	wg.Wait()
	return out[0], out[1]
}

// Reset clears both branches.
func (d *IQDecimator) Reset() {
	for _, b := range d.branches {
		b.Reset()
	}
}

// Latency returns the group delay in input samples.
func (d *IQDecimator) Latency() int {
	return d.branches[0].Latency()
}

// Info returns the filter and stage metadata shared by both branches.
func (d *IQDecimator) Info() Info {
	return d.branches[0].Info()
}

// Factor returns the decimation factor.
func (d *IQDecimator) Factor() int {
	return d.branches[0].Factor()
}
