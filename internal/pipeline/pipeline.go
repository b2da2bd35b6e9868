// Package pipeline plans and runs multi-stage decimation.
//
// A large decimation factor is decomposed into a chain of small integer
// stages, factors of two first. Each stage gets its own lowpass, sized for
// the sample rate it runs at, so the total work is far below that of one
// long filter at the input rate.
package pipeline

import (
	"fmt"
	"strings"
)

// QualityParams holds quality-related parameters for pipeline construction.
// Frequencies are normalized to the final output Nyquist (0-1).
type QualityParams struct {
	Precision     int     // Bits of precision (8-33), sets stopband attenuation
	PassbandEnd   float64 // Edge of the band that must survive unaliased
	StopbandBegin float64 // Start of the last stage's stopband
}

// Validate checks the parameters.
func (q QualityParams) Validate() error {
	if q.Precision < minPrecision || q.Precision > maxPrecision {
		return fmt.Errorf("%w: precision must be %d-%d bits, got %d", ErrInvalidPlan, minPrecision, maxPrecision, q.Precision)
	}
	if q.PassbandEnd <= 0 || q.PassbandEnd >= 1 {
		return fmt.Errorf("%w: passband end must be in (0, 1), got %g", ErrInvalidPlan, q.PassbandEnd)
	}
	if q.StopbandBegin <= q.PassbandEnd || q.StopbandBegin > 1 {
		return fmt.Errorf("%w: stopband begin must be in (passband end, 1], got %g", ErrInvalidPlan, q.StopbandBegin)
	}
	return nil
}

// AttenuationDB returns the stopband attenuation implied by Precision.
func (q QualityParams) AttenuationDB() float64 {
	return float64(q.Precision) * dbPerBit
}

// StageSpec specifies parameters for one decimation stage.
type StageSpec struct {
	Factor          int
	InputRate       float64 // Hz, sample rate the stage runs at
	Cutoff          float64 // Hz, -6 dB point of the stage lowpass
	TransitionWidth float64 // Hz, passband edge to stopband edge
	AttenuationDB   float64
}

// OutputRate returns the stage output sample rate.
func (s StageSpec) OutputRate() float64 {
	return s.InputRate / float64(s.Factor)
}

// Plan is an ordered list of stages realizing one total decimation factor.
type Plan struct {
	stages      []StageSpec
	inputRate   float64
	totalFactor int
}

// PlanFactors decomposes total into stage factors: all factors of two
// first, then the remaining prime factors in ascending order. A total of
// one yields a single pass-through stage.
func PlanFactors(total int) ([]int, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: decimation factor must be >= 1, got %d", ErrInvalidPlan, total)
	}
	if total == 1 {
		return []int{1}, nil
	}

	factors := make([]int, 0, defaultStageCapacity)
	remaining := total
	for remaining%2 == 0 {
		factors = append(factors, 2)
		remaining /= 2
	}
	for p := 3; p*p <= remaining; p += 2 {
		for remaining%p == 0 {
			factors = append(factors, p)
			remaining /= p
		}
	}
	if remaining > 1 {
		factors = append(factors, remaining)
	}

	for _, f := range factors {
		if f > maxStageFactor {
			return nil, fmt.Errorf("%w: prime factor %d of %d exceeds %d", ErrInvalidPlan, f, total, maxStageFactor)
		}
	}
	return factors, nil
}

// BuildPlan designs the stages for decimating inputRate by total.
//
// Intermediate stages only need to keep aliases out of the final passband,
// so their stopband starts at outputRate - passbandEdge; the last stage
// cuts at StopbandBegin of the final Nyquist.
func BuildPlan(inputRate float64, total int, q QualityParams) (*Plan, error) {
	if inputRate <= 0 {
		return nil, fmt.Errorf("%w: input rate must be positive, got %g", ErrInvalidPlan, inputRate)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	factors, err := PlanFactors(total)
	if err != nil {
		return nil, err
	}

	finalNyquist := inputRate / float64(total) / 2
	passEdge := q.PassbandEnd * finalNyquist
	att := q.AttenuationDB()

	p := &Plan{
		stages:      make([]StageSpec, 0, len(factors)),
		inputRate:   inputRate,
		totalFactor: total,
	}
	rate := inputRate
	for i, m := range factors {
		out := rate / float64(m)
		stopEdge := out - passEdge
		if i == len(factors)-1 {
			stopEdge = q.StopbandBegin * finalNyquist
		}
		stopEdge = min(stopEdge, rate/2)
		p.stages = append(p.stages, StageSpec{
			Factor:          m,
			InputRate:       rate,
			Cutoff:          (passEdge + stopEdge) / 2,
			TransitionWidth: stopEdge - passEdge,
			AttenuationDB:   att,
		})
		rate = out
	}
	return p, nil
}

// Stages returns a copy of the stage list.
func (p *Plan) Stages() []StageSpec {
	out := make([]StageSpec, len(p.stages))
	copy(out, p.stages)
	return out
}

// TotalFactor returns the product of all stage factors.
func (p *Plan) TotalFactor() int {
	return p.totalFactor
}

// InputRate returns the plan input sample rate in Hz.
func (p *Plan) InputRate() float64 {
	return p.inputRate
}

// OutputRate returns the plan output sample rate in Hz.
func (p *Plan) OutputRate() float64 {
	return p.inputRate / float64(p.totalFactor)
}

// String returns a human-readable description of the plan.
func (p *Plan) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Decimation plan: %.0f Hz / %d = %.2f Hz, %d stage(s)\n",
		p.inputRate, p.totalFactor, p.OutputRate(), len(p.stages))
	for i, s := range p.stages {
		fmt.Fprintf(&sb, "  Stage %d: /%d at %.0f Hz, cutoff %.1f Hz, transition %.1f Hz, %.0f dB\n",
			i+1, s.Factor, s.InputRate, s.Cutoff, s.TransitionWidth, s.AttenuationDB)
	}
	return sb.String()
}
