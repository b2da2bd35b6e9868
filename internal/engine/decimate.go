// Package engine implements batch and streaming FIR decimation over real and
// complex sample streams.
//
// All streaming types follow one discipline: the samples a filter window
// still needs are carried from one Process call to the next, so that feeding
// a stream in arbitrary chunks yields the same output as one batch call over
// the concatenated stream.
package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-stream-decimator/internal/filter"
	"github.com/tphakala/go-stream-decimator/internal/simdops"
)

// Sample is the set of element types a stream may carry.
type Sample = simdops.Sample

// ErrBufferSize reports a caller-supplied output buffer of the wrong length.
var ErrBufferSize = errors.New("output buffer size mismatch")

// OutputLen returns how many outputs a batch decimation of n samples with a
// filter of filterLen taps and the given factor produces:
//
//	ceil((n - (filterLen - 1)) / factor), or 0 when n < filterLen.
func OutputLen(n, filterLen, factor int) int {
	if filterLen < 1 || factor < 1 || n < filterLen {
		return 0
	}
	usable := n - (filterLen - 1)
	return (usable + factor - 1) / factor
}

// Decimate filters samples with f and keeps every factor-th output.
//
// Output k is Σ_j samples[k·factor + j] · f[j], a strided cross-correlation
// that never materializes the full-rate filtered signal. Fewer samples than
// taps yield an empty result. Complex samples are split into real and
// imaginary branches, each filtered by the real taps, so the branches never
// mix. factor < 1 or an empty filter is a programming error and panics.
func Decimate[S Sample](samples []S, f filter.Filter, factor int) []S {
	mustValid(f, factor)
	out := make([]S, OutputLen(len(samples), f.Len(), factor))
	simdops.NewKernel[S](f.Taps()).Correlate(out, samples, factor)
	return out
}

// DecimateInto is Decimate writing into dst, which must have exactly
// OutputLen(len(samples), f.Len(), factor) elements.
func DecimateInto[S Sample](dst, samples []S, f filter.Filter, factor int) (int, error) {
	if err := validate(f, factor); err != nil {
		return 0, err
	}
	want := OutputLen(len(samples), f.Len(), factor)
	if len(dst) != want {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(dst), want)
	}
	simdops.NewKernel[S](f.Taps()).Correlate(dst, samples, factor)
	return want, nil
}

func validate(f filter.Filter, factor int) error {
	if f.Len() == 0 {
		return fmt.Errorf("%w: empty filter", filter.ErrInvalidConfig)
	}
	if factor < 1 {
		return fmt.Errorf("%w: decimation factor must be >= 1, got %d", filter.ErrInvalidConfig, factor)
	}
	return nil
}

func mustValid(f filter.Filter, factor int) {
	if err := validate(f, factor); err != nil {
		panic("engine: " + err.Error())
	}
}
