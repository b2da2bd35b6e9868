package pipeline

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-stream-decimator/internal/engine"
	"github.com/tphakala/go-stream-decimator/internal/filter"
)

// ErrInvalidPlan reports unusable pipeline parameters.
var ErrInvalidPlan = errors.New("invalid decimation plan")

// Stage is a single streaming processing stage in a cascade.
type Stage[S engine.Sample] interface {
	// Process consumes one chunk and returns the outputs it completes.
	Process(chunk []S) []S

	// Reset clears internal state.
	Reset()

	// Factor returns the stage decimation factor.
	Factor() int

	// Latency returns the stage group delay in its own input samples.
	Latency() int

	// FilterLength returns the number of filter taps.
	FilterLength() int
}

// Cascade chains stages, feeding each one's output to the next.
// It is itself a Stage, so cascades nest.
type Cascade[S engine.Sample] struct {
	stages []Stage[S]
}

// NewCascade chains the given stages in order.
func NewCascade[S engine.Sample](stages ...Stage[S]) (*Cascade[S], error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: cascade needs at least one stage", ErrInvalidPlan)
	}
	return &Cascade[S]{stages: stages}, nil
}

// Build designs a Kaiser lowpass for every stage of p and returns the
// streaming cascade.
func Build[S engine.Sample](p *Plan) (*Cascade[S], error) {
	stages := make([]Stage[S], 0, len(p.stages))
	for i, spec := range p.stages {
		f, err := filter.DesignLowpassKaiser(spec.AttenuationDB, spec.TransitionWidth, spec.Cutoff, spec.InputRate)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		d, err := engine.NewStreamingDecimator[S](f, spec.Factor)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		stages = append(stages, d)
	}
	return NewCascade(stages...)
}

// Process runs chunk through every stage. An intermediate stage that
// completes no output ends the call early; its input is already buffered.
func (c *Cascade[S]) Process(chunk []S) []S {
	out := chunk
	for _, s := range c.stages {
		out = s.Process(out)
		if len(out) == 0 {
			return []S{}
		}
	}
	return out
}

// Reset clears every stage.
func (c *Cascade[S]) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// Factor returns the product of the stage factors.
func (c *Cascade[S]) Factor() int {
	total := 1
	for _, s := range c.stages {
		total *= s.Factor()
	}
	return total
}

// Latency returns the combined group delay in cascade input samples.
func (c *Cascade[S]) Latency() int {
	latency := 0
	scale := 1
	for _, s := range c.stages {
		latency += s.Latency() * scale
		scale *= s.Factor()
	}
	return latency
}

// FilterLength returns the total number of taps across stages.
func (c *Cascade[S]) FilterLength() int {
	total := 0
	for _, s := range c.stages {
		total += s.FilterLength()
	}
	return total
}

// NumStages returns the number of stages.
func (c *Cascade[S]) NumStages() int {
	return len(c.stages)
}
