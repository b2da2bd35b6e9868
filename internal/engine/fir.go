package engine

import (
	"slices"

	"github.com/tphakala/go-stream-decimator/internal/filter"
	"github.com/tphakala/go-stream-decimator/internal/simdops"
)

// StreamingFIR applies a causal FIR filter, y[n] = Σ h[k]·x[n-k], to a
// chunked stream without decimation. State starts as len(h)-1 zeros, so
// every Process call returns exactly len(chunk) samples.
type StreamingFIR[S Sample] struct {
	filter filter.Filter

	// kernel holds h reversed, turning correlation into convolution.
	kernel *simdops.Kernel[S]

	// history is the zero-primed tail followed by the pending chunk.
	history []S
}

// NewStreamingFIR returns a filter with zeroed state.
func NewStreamingFIR[S Sample](f filter.Filter) (*StreamingFIR[S], error) {
	if err := validate(f, 1); err != nil {
		return nil, err
	}
	s := &StreamingFIR[S]{
		filter: f,
		kernel: simdops.NewKernel[S](f.Reversed().Taps()),
	}
	s.Reset()
	return s, nil
}

// Process filters chunk and returns len(chunk) output samples.
func (s *StreamingFIR[S]) Process(chunk []S) []S {
	out := make([]S, len(chunk))
	if len(chunk) == 0 {
		return out
	}
	s.history = append(s.history, chunk...)
	s.kernel.Correlate(out, s.history, 1)

	tail := s.kernel.Len() - 1
	kept := copy(s.history, s.history[len(s.history)-tail:])
	s.history = s.history[:kept]
	return out
}

// Reset zeroes the filter state.
func (s *StreamingFIR[S]) Reset() {
	tail := s.kernel.Len() - 1
	if cap(s.history) < tail*historyBufferMultiplier {
		s.history = make([]S, tail, max(tail*historyBufferMultiplier, 1))
	} else {
		s.history = s.history[:tail]
	}
	clear(s.history)
}

// Filter returns the filter taps.
func (s *StreamingFIR[S]) Filter() filter.Filter {
	return s.filter
}

// Latency returns the group delay of a linear-phase filter, in samples.
func (s *StreamingFIR[S]) Latency() int {
	return (s.kernel.Len() - 1) / 2
}

// FiltFilt runs the filter forward and backward over buf and returns a
// zero-phase result of the same length. Each pass uses a fresh, zeroed
// instance and the receiver's streaming state is left untouched.
func (s *StreamingFIR[S]) FiltFilt(buf []S) []S {
	return FiltFilt(s.filter, buf)
}

// FiltFilt is the zero-phase forward-backward filter of buf by f. It needs
// the whole signal up front and cannot be streamed.
func FiltFilt[S Sample](f filter.Filter, buf []S) []S {
	forward := mustStreamingFIR[S](f).Process(buf)
	slices.Reverse(forward)
	backward := mustStreamingFIR[S](f).Process(forward)
	slices.Reverse(backward)
	return backward
}

func mustStreamingFIR[S Sample](f filter.Filter) *StreamingFIR[S] {
	s, err := NewStreamingFIR[S](f)
	if err != nil {
		panic("engine: " + err.Error())
	}
	return s
}
