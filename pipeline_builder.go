package decimator

import (
	"fmt"

	"github.com/tphakala/go-stream-decimator/internal/pipeline"
)

// Stage is one streaming processing stage; Decimator stages and cascades
// both satisfy it.
type Stage[S Sample] = pipeline.Stage[S]

// Plan describes the stages of a multistage decimation.
type Plan = pipeline.Plan

// BuildPlan decomposes config.Factor into stages and sizes each stage's
// lowpass from the quality settings.
func BuildPlan(config *Config) (*Plan, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errNilConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p, err := pipeline.BuildPlan(config.InputRate, config.Factor, config.Quality.params())
	if err != nil {
		return nil, fmt.Errorf("failed to build plan: %w", err)
	}
	return p, nil
}

// NewCascade builds the multistage streaming decimator for config.
func NewCascade[S Sample](config *Config) (*pipeline.Cascade[S], error) {
	p, err := BuildPlan(config)
	if err != nil {
		return nil, err
	}
	c, err := pipeline.Build[S](p)
	if err != nil {
		return nil, fmt.Errorf("failed to build cascade: %w", err)
	}
	return c, nil
}
