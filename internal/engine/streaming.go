package engine

import (
	"github.com/tphakala/go-stream-decimator/internal/filter"
	"github.com/tphakala/go-stream-decimator/internal/simdops"
)

// StreamingDecimator decimates a stream delivered in arbitrary chunks.
//
// Concatenating the outputs of successive Process calls equals
// Decimate(concatenated input, f, factor). An instance carries the state of
// exactly one stream and is not safe for concurrent use.
type StreamingDecimator[S Sample] struct {
	filter filter.Filter
	kernel *simdops.Kernel[S]
	factor int

	// history holds the unconsumed tail: at most L-1 samples after
	// every call.
	history []S

	// skip is how many leading samples of the next combined buffer were
	// already stepped over by the previous call's last window.
	skip int

	samplesIn  int64
	samplesOut int64
}

// NewStreamingDecimator returns a decimator with empty state.
func NewStreamingDecimator[S Sample](f filter.Filter, factor int) (*StreamingDecimator[S], error) {
	if err := validate(f, factor); err != nil {
		return nil, err
	}
	return &StreamingDecimator[S]{
		filter:  f,
		kernel:  simdops.NewKernel[S](f.Taps()),
		factor:  factor,
		history: make([]S, 0, f.Len()*historyBufferMultiplier),
	}, nil
}

// Process consumes chunk and returns the outputs whose windows are now
// complete. The result may be empty. chunk is never retained.
func (d *StreamingDecimator[S]) Process(chunk []S) []S {
	d.samplesIn += int64(len(chunk))

	// Phase carry-over larger than what we hold plus the new chunk: the
	// whole combined buffer lies before the next window.
	if d.skip >= len(d.history)+len(chunk) {
		d.skip -= len(d.history) + len(chunk)
		d.history = d.history[:0]
		return []S{}
	}

	// combined = history ++ chunk, adjusted = combined[skip:]
	if d.skip <= len(d.history) {
		d.history = append(d.history[:copy(d.history, d.history[d.skip:])], chunk...)
	} else {
		d.history = append(d.history[:0], chunk[d.skip-len(d.history):]...)
	}
	d.skip = 0

	n := d.kernel.Len()
	adjusted := d.history
	if len(adjusted) < n {
		return []S{}
	}

	usable := len(adjusted) - (n - 1)
	count := (usable + d.factor - 1) / d.factor
	out := make([]S, count)
	d.kernel.Correlate(out, adjusted, d.factor)

	// Keep the last n-1 samples; the next window starts count·factor - usable
	// samples into them.
	kept := copy(d.history, adjusted[usable:])
	d.history = d.history[:kept]
	d.skip = count*d.factor - usable

	d.samplesOut += int64(count)
	return out
}

// Reset returns the decimator to its freshly constructed state.
func (d *StreamingDecimator[S]) Reset() {
	d.history = d.history[:0]
	d.skip = 0
	d.samplesIn = 0
	d.samplesOut = 0
}

// Factor returns the decimation factor.
func (d *StreamingDecimator[S]) Factor() int {
	return d.factor
}

// Filter returns the decimation filter.
func (d *StreamingDecimator[S]) Filter() filter.Filter {
	return d.filter
}

// FilterLength returns the number of taps.
func (d *StreamingDecimator[S]) FilterLength() int {
	return d.kernel.Len()
}

// Latency returns the filter group delay in input samples.
func (d *StreamingDecimator[S]) Latency() int {
	return (d.kernel.Len() - 1) / 2
}

// GetStatistics returns processing statistics.
func (d *StreamingDecimator[S]) GetStatistics() map[string]int64 {
	return map[string]int64{
		statSamplesIn:  d.samplesIn,
		statSamplesOut: d.samplesOut,
	}
}
