package decimator

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-stream-decimator/internal/engine"
	"github.com/tphakala/go-stream-decimator/internal/filter"
	"github.com/tphakala/go-stream-decimator/internal/pipeline"
	"github.com/tphakala/simd/cpu"
)

// Sample is the set of element types a stream may carry: real float32 or
// float64 audio, or complex64/complex128 I/Q.
type Sample = engine.Sample

// Config holds decimation configuration.
type Config struct {
	// InputRate is the sample rate of the input stream in Hz.
	InputRate float64

	// Factor is the integer decimation factor (>= 1).
	Factor int

	// Quality determines stopband attenuation and the transition band when
	// the filter is derived automatically.
	Quality QualitySpec

	// Taps fixes the filter length (odd). Zero derives the length from
	// Quality using the Kaiser estimate.
	Taps int

	// Cutoff is the lowpass -6 dB frequency in Hz. Zero places it midway
	// through the quality transition band.
	Cutoff float64

	// Window applies when Taps is set. The zero value is Hamming.
	Window filter.Window

	// Multistage splits Factor into a cascade of smaller stages.
	// Ignored when Taps is set.
	Multistage bool

	// EnableParallel processes the I and Q branches of an IQDecimator
	// concurrently.
	EnableParallel bool
}

// QualitySpec defines decimation quality parameters.
// Users can either use a preset or customize individual parameters.
type QualitySpec struct {
	// Preset is a convenience setting for common quality levels.
	Preset QualityPreset

	// Precision in bits (8-33). Each bit adds about 6 dB of stopband
	// attenuation.
	Precision int

	// PassbandEnd is the fraction of the output Nyquist that must pass
	// unaliased. Typically 0.7-0.95.
	PassbandEnd float64

	// StopbandBegin is the fraction of the output Nyquist where the
	// stopband starts. Must be > PassbandEnd and <= 1.
	StopbandBegin float64
}

// QualityPreset enumerates predefined quality levels.
type QualityPreset int

const (
	// QualityMedium is the default: 96 dB stopband, 80% passband.
	QualityMedium QualityPreset = iota

	// QualityLow trades stopband depth and passband width for short filters.
	QualityLow

	// QualityHigh gives 120 dB stopband and an 85% passband.
	QualityHigh

	// QualityVeryHigh gives 144 dB stopband and a 90% passband.
	QualityVeryHigh

	// QualityCustom indicates manual configuration of parameters.
	QualityCustom
)

// Common errors returned by the decimator.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = filter.ErrInvalidConfig

	// ErrBufferSize indicates a caller-supplied buffer of the wrong length.
	ErrBufferSize = engine.ErrBufferSize

	// ErrInvalidPlan indicates a factor or quality no cascade can realize.
	ErrInvalidPlan = pipeline.ErrInvalidPlan

	errNilConfig = errors.New("config is nil")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputRate <= 0 {
		return fmt.Errorf("%w: input rate must be positive", ErrInvalidConfig)
	}
	if c.Factor < minFactor || c.Factor > maxFactor {
		return fmt.Errorf("%w: decimation factor must be %d-%d, got %d", ErrInvalidConfig, minFactor, maxFactor, c.Factor)
	}
	if c.Taps < 0 || (c.Taps > 0 && c.Taps%2 == 0) {
		return fmt.Errorf("%w: tap count must be odd, got %d", ErrInvalidConfig, c.Taps)
	}
	if c.Cutoff < 0 || c.Cutoff >= c.InputRate/2 {
		return fmt.Errorf("%w: cutoff %g Hz outside [0, %g)", ErrInvalidConfig, c.Cutoff, c.InputRate/2)
	}
	if c.Taps > 0 {
		if err := c.Window.Validate(); err != nil {
			return err
		}
	}
	return c.Quality.Validate()
}

// Validate checks if the quality specification is valid.
func (q *QualitySpec) Validate() error {
	switch q.Preset {
	case QualityLow, QualityMedium, QualityHigh, QualityVeryHigh:
		return nil
	case QualityCustom:
	default:
		return fmt.Errorf("%w: unknown quality preset %d", ErrInvalidConfig, q.Preset)
	}

	if q.Precision < precision8Bit || q.Precision > precision33Bit {
		return fmt.Errorf("%w: precision must be %d-%d bits", ErrInvalidConfig, precision8Bit, precision33Bit)
	}
	if q.PassbandEnd <= 0 || q.PassbandEnd >= 1 {
		return fmt.Errorf("%w: passband end must be in (0, 1)", ErrInvalidConfig)
	}
	if q.StopbandBegin <= q.PassbandEnd || q.StopbandBegin > 1 {
		return fmt.Errorf("%w: stopband begin must be in (passband_end, 1]", ErrInvalidConfig)
	}
	return nil
}

// resolved returns the preset's parameters, or q itself for QualityCustom.
func (q QualitySpec) resolved() QualitySpec {
	if q.Preset == QualityCustom {
		return q
	}
	return GetPresetSpec(q.Preset)
}

func (q QualitySpec) params() pipeline.QualityParams {
	r := q.resolved()
	return pipeline.QualityParams{
		Precision:     r.Precision,
		PassbandEnd:   r.PassbandEnd,
		StopbandBegin: r.StopbandBegin,
	}
}

// GetPresetSpec returns the quality specification for a preset.
func GetPresetSpec(preset QualityPreset) QualitySpec {
	switch preset {
	case QualityLow:
		return QualitySpec{
			Preset:        QualityLow,
			Precision:     precision12Bit,
			PassbandEnd:   lowPassbandEnd,
			StopbandBegin: lowStopbandBegin,
		}

	case QualityHigh:
		return QualitySpec{
			Preset:        QualityHigh,
			Precision:     precision20Bit,
			PassbandEnd:   highPassbandEnd,
			StopbandBegin: highStopbandBegin,
		}

	case QualityVeryHigh:
		return QualitySpec{
			Preset:        QualityVeryHigh,
			Precision:     precision24Bit,
			PassbandEnd:   veryHighPassbandEnd,
			StopbandBegin: veryHighStopbandBegin,
		}

	default:
		return QualitySpec{
			Preset:        QualityMedium,
			Precision:     precision16Bit,
			PassbandEnd:   mediumPassbandEnd,
			StopbandBegin: mediumStopbandBegin,
		}
	}
}

// DesignFilter designs the single-stage lowpass described by the config.
func (c *Config) DesignFilter() (filter.Filter, error) {
	if err := c.Validate(); err != nil {
		return filter.Filter{}, err
	}

	q := c.Quality.resolved()
	nyquist := c.InputRate / float64(c.Factor) / 2
	passEdge := q.PassbandEnd * nyquist
	stopEdge := q.StopbandBegin * nyquist

	cutoff := c.Cutoff
	if cutoff == 0 {
		cutoff = (passEdge + stopEdge) / 2
	}

	if c.Taps > 0 {
		return filter.DesignLowpassFIR(c.Taps, cutoff, c.InputRate, c.Window)
	}
	return filter.DesignLowpassKaiser(q.params().AttenuationDB(), stopEdge-passEdge, cutoff, c.InputRate)
}

// Decimator is a streaming decimator for one stream of sample type S.
// It is not safe for concurrent use.
type Decimator[S Sample] struct {
	config Config
	stage  pipeline.Stage[S]
	stages int
}

// New creates a streaming decimator with the specified configuration.
// A single Kaiser-designed stage is used unless Multistage is set.
func New[S Sample](config *Config) (*Decimator[S], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errNilConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Multistage && config.Taps == 0 {
		c, err := NewCascade[S](config)
		if err != nil {
			return nil, err
		}
		return &Decimator[S]{config: *config, stage: c, stages: c.NumStages()}, nil
	}

	f, err := config.DesignFilter()
	if err != nil {
		return nil, err
	}
	d, err := engine.NewStreamingDecimator[S](f, config.Factor)
	if err != nil {
		return nil, err
	}
	return &Decimator[S]{config: *config, stage: d, stages: 1}, nil
}

// Process consumes one chunk and returns the outputs it completes, which
// may be none. Concatenated outputs equal one batch decimation of the
// concatenated input.
func (d *Decimator[S]) Process(chunk []S) []S {
	return d.stage.Process(chunk)
}

// Reset clears all internal state.
func (d *Decimator[S]) Reset() {
	d.stage.Reset()
}

// Latency returns the group delay in input samples.
func (d *Decimator[S]) Latency() int {
	return d.stage.Latency()
}

// Factor returns the total decimation factor.
func (d *Decimator[S]) Factor() int {
	return d.stage.Factor()
}

// OutputRate returns the output sample rate in Hz.
func (d *Decimator[S]) OutputRate() float64 {
	return d.config.InputRate / float64(d.config.Factor)
}

// Info returns information about the decimator implementation.
func (d *Decimator[S]) Info() Info {
	algorithm := "single-stage FIR"
	if d.stages > 1 {
		algorithm = fmt.Sprintf("%d-stage FIR cascade", d.stages)
	}
	return Info{
		Algorithm:    algorithm,
		Stages:       d.stages,
		FilterLength: d.stage.FilterLength(),
		Latency:      d.stage.Latency(),
		SIMDType:     cpu.Info(),
	}
}

// Info describes a decimator.
type Info struct {
	// Algorithm describes the decimation structure in use.
	Algorithm string

	// Stages is the number of decimation stages.
	Stages int

	// FilterLength is the total number of filter taps across stages.
	FilterLength int

	// Latency is the group delay in input samples.
	Latency int

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}
