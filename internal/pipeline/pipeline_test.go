package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-stream-decimator/internal/engine"
	"github.com/tphakala/go-stream-decimator/internal/filter"
	"github.com/tphakala/go-stream-decimator/internal/testutil"
)

var (
	_ Stage[float64]    = (*engine.StreamingDecimator[float64])(nil)
	_ Stage[complex128] = (*Cascade[complex128])(nil)
)

const testInputRate = 48000.0

var testQuality = QualityParams{Precision: 16, PassbandEnd: 0.8, StopbandBegin: 0.95}

func TestPlanFactors(t *testing.T) {
	tests := []struct {
		total int
		want  []int
	}{
		{1, []int{1}},
		{2, []int{2}},
		{3, []int{3}},
		{8, []int{2, 2, 2}},
		{12, []int{2, 2, 3}},
		{45, []int{3, 3, 5}},
		{250, []int{2, 5, 5, 5}},
		{257, []int{257}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.total), func(t *testing.T) {
			got, err := PlanFactors(tt.total)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanFactors_Invalid(t *testing.T) {
	for _, total := range []int{0, -4, 263} {
		_, err := PlanFactors(total)
		require.ErrorIs(t, err, ErrInvalidPlan, "total=%d", total)
	}
}

func TestQualityParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       QualityParams
		wantErr bool
	}{
		{"valid", testQuality, false},
		{"precision too low", QualityParams{Precision: 4, PassbandEnd: 0.8, StopbandBegin: 0.9}, true},
		{"precision too high", QualityParams{Precision: 40, PassbandEnd: 0.8, StopbandBegin: 0.9}, true},
		{"passband zero", QualityParams{Precision: 16, PassbandEnd: 0, StopbandBegin: 0.9}, true},
		{"stopband below passband", QualityParams{Precision: 16, PassbandEnd: 0.9, StopbandBegin: 0.8}, true},
		{"stopband beyond nyquist", QualityParams{Precision: 16, PassbandEnd: 0.8, StopbandBegin: 1.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPlan)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestBuildPlan(t *testing.T) {
	p, err := BuildPlan(testInputRate, 12, testQuality)
	require.NoError(t, err)

	stages := p.Stages()
	require.Len(t, stages, 3)
	assert.Equal(t, 12, p.TotalFactor())
	assert.InDelta(t, 4000.0, p.OutputRate(), 1e-9)
	assert.InDelta(t, testInputRate, p.InputRate(), 1e-9)

	finalNyquist := p.OutputRate() / 2
	rate := testInputRate
	for i, s := range stages {
		assert.InDelta(t, rate, s.InputRate, 1e-9, "stage %d input rate", i)
		assert.Less(t, s.Cutoff, s.InputRate/2, "stage %d cutoff beyond Nyquist", i)
		assert.Positive(t, s.TransitionWidth)
		assert.Greater(t, s.Cutoff, testQuality.PassbandEnd*finalNyquist, "stage %d cuts into passband", i)
		assert.InDelta(t, 16*dbPerBit, s.AttenuationDB, 1e-9)
		rate = s.OutputRate()
	}

	// Only the last stage has to reject everything above the final Nyquist.
	last := stages[len(stages)-1]
	assert.LessOrEqual(t, last.Cutoff+last.TransitionWidth/2, finalNyquist+1e-9)

	assert.Contains(t, p.String(), "3 stage(s)")
}

func TestBuildPlan_Invalid(t *testing.T) {
	_, err := BuildPlan(0, 4, testQuality)
	require.ErrorIs(t, err, ErrInvalidPlan)

	_, err = BuildPlan(testInputRate, 0, testQuality)
	require.ErrorIs(t, err, ErrInvalidPlan)

	_, err = BuildPlan(testInputRate, 4, QualityParams{})
	require.ErrorIs(t, err, ErrInvalidPlan)
}

func TestCascade_StreamingMatchesStagedBatch(t *testing.T) {
	for _, total := range []int{1, 4, 6, 9} {
		t.Run(fmt.Sprint(total), func(t *testing.T) {
			p, err := BuildPlan(testInputRate, total, testQuality)
			require.NoError(t, err)
			c, err := Build[float64](p)
			require.NoError(t, err)
			assert.Equal(t, total, c.Factor())

			fx := testutil.NewFixture(uint64(total))
			stream := fx.Real(4000)

			// Reference: each stage's batch decimation applied in turn.
			want := stream
			for _, s := range c.stages {
				d, ok := s.(*engine.StreamingDecimator[float64])
				require.True(t, ok)
				want = engine.Decimate(want, d.Filter(), d.Factor())
			}

			var got []float64
			for _, chunk := range testutil.Chunks(stream, fx.Partition(len(stream), 300)) {
				got = append(got, c.Process(chunk)...)
			}
			testutil.AssertSamplesClose(t, want, got, testutil.StreamingTolerance)
		})
	}
}

func TestCascade_Complex(t *testing.T) {
	p, err := BuildPlan(testInputRate, 8, testQuality)
	require.NoError(t, err)
	c, err := Build[complex128](p)
	require.NoError(t, err)

	fx := testutil.NewFixture(42)
	stream := fx.Complex(3000)
	whole := c.Process(stream)
	c.Reset()

	var chunked []complex128
	for _, chunk := range testutil.Chunks(stream, fx.Partition(len(stream), 100)) {
		chunked = append(chunked, c.Process(chunk)...)
	}
	testutil.AssertSamplesClose(t, whole, chunked, testutil.StreamingTolerance)
}

func TestCascade_Accessors(t *testing.T) {
	a := engineStage(t, 5, 2)
	b := engineStage(t, 9, 3)
	c, err := NewCascade[float64](a, b)
	require.NoError(t, err)

	assert.Equal(t, 6, c.Factor())
	assert.Equal(t, 14, c.FilterLength())
	assert.Equal(t, 2+4*2, c.Latency())
	assert.Equal(t, 2, c.NumStages())

	_, err = NewCascade[float64]()
	require.ErrorIs(t, err, ErrInvalidPlan)
}

func TestCascade_Nested(t *testing.T) {
	inner, err := NewCascade[float64](engineStage(t, 5, 2), engineStage(t, 5, 2))
	require.NoError(t, err)
	outer, err := NewCascade[float64](inner, engineStage(t, 3, 3))
	require.NoError(t, err)

	assert.Equal(t, 12, outer.Factor())
	out := outer.Process(testutil.NewFixture(3).Real(1200))
	assert.NotEmpty(t, out)
}

func engineStage(t *testing.T, length, factor int) *engine.StreamingDecimator[float64] {
	t.Helper()
	f, err := filter.DesignLowpassFIR(length, 0.4*testInputRate/float64(factor), testInputRate, filter.Hamming)
	require.NoError(t, err)
	d, err := engine.NewStreamingDecimator[float64](f, factor)
	require.NoError(t, err)
	return d
}

func BenchmarkCascade(b *testing.B) {
	p, err := BuildPlan(testInputRate, 16, testQuality)
	require.NoError(b, err)
	c, err := Build[float32](p)
	require.NoError(b, err)
	chunk := make([]float32, 4096)

	for b.Loop() {
		_ = c.Process(chunk)
	}
}
