package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-stream-decimator/internal/testutil"
)

const (
	testSampleRate = 48000.0
	testCutoff     = 4000.0
	testTaps15     = 15
	testTaps63     = 63
	testTaps101    = 101

	symmetryTolerance = 1e-12
)

func TestDesignLowpassFIR_UnityDCGain(t *testing.T) {
	windows := []Window{
		Hamming, Rectangular, Hann, Blackman,
		{Type: WindowBlackmanHarris}, {Type: WindowNuttall}, Kaiser(8.6),
	}
	for _, w := range windows {
		for _, length := range []int{1, 3, testTaps15, testTaps63, testTaps101} {
			t.Run(w.Type.String(), func(t *testing.T) {
				f, err := DesignLowpassFIR(length, testCutoff, testSampleRate, w)
				require.NoError(t, err)
				assert.Equal(t, length, f.Len())
				testutil.AssertDCGain(t, f.Taps(), 1.0, testutil.DCGainTolerance)
			})
		}
	}
}

func TestDesignLowpassFIR_SymmetricWithCenterPeak(t *testing.T) {
	f, err := DesignLowpassFIR(testTaps63, testCutoff, testSampleRate, Hamming)
	require.NoError(t, err)

	taps := f.Taps()
	testutil.AssertOddLength(t, taps)
	testutil.AssertSymmetric(t, taps, symmetryTolerance)
	testutil.AssertCenterIsMax(t, taps)
	assert.True(t, f.IsSymmetric(symmetryTolerance))
	assert.InDelta(t, 31.0, f.GroupDelay(), 0)
}

func TestDesignLowpassFIR_Validation(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		cutoff     float64
		sampleRate float64
		window     Window
	}{
		{"even_length", 4, testCutoff, testSampleRate, Hamming},
		{"negative_length", -1, testCutoff, testSampleRate, Hamming},
		{"zero_length", 0, testCutoff, testSampleRate, Hamming},
		{"cutoff_at_sample_rate", testTaps15, testSampleRate, testSampleRate, Hamming},
		{"cutoff_at_nyquist", testTaps15, testSampleRate / 2, testSampleRate, Hamming},
		{"zero_cutoff", testTaps15, 0, testSampleRate, Hamming},
		{"negative_cutoff", testTaps15, -100, testSampleRate, Hamming},
		{"zero_sample_rate", testTaps15, testCutoff, 0, Hamming},
		{"unknown_window", testTaps15, testCutoff, testSampleRate, Window{Type: WindowType(99)}},
		{"negative_kaiser_beta", testTaps15, testCutoff, testSampleRate, Kaiser(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DesignLowpassFIR(tt.length, tt.cutoff, tt.sampleRate, tt.window)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDesignLowpassFIR_SingleTap(t *testing.T) {
	f, err := DesignLowpassFIR(1, testCutoff, testSampleRate, Hamming)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, f.Taps())
}

func TestDesignLowpassFIR_Attenuation(t *testing.T) {
	f, err := DesignLowpassFIR(testTaps101, testCutoff, testSampleRate, Blackman)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, f.MagnitudeDB(0, testSampleRate), 1e-6, "DC should pass at 0 dB")
	assert.InDelta(t, 0.0, f.MagnitudeDB(testCutoff/4, testSampleRate), 0.1, "passband ripple")
	assert.Less(t, f.MagnitudeDB(3*testCutoff, testSampleRate), -50.0, "stopband attenuation")
}

func TestDesignLowpassKaiser(t *testing.T) {
	f, err := DesignLowpassKaiser(80, 2000, testCutoff, testSampleRate)
	require.NoError(t, err)

	testutil.AssertOddLength(t, f.Taps())
	testutil.AssertDCGain(t, f.Taps(), 1.0, testutil.DCGainTolerance)
	assert.Less(t, f.MagnitudeDB(testCutoff+2500, testSampleRate), -60.0)

	_, err = DesignLowpassKaiser(0, 2000, testCutoff, testSampleRate)
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = DesignLowpassKaiser(80, 0, testCutoff, testSampleRate)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew(t *testing.T) {
	src := []float64{10, 20, 30}
	f, err := New(src)
	require.NoError(t, err)

	src[0] = 99
	assert.Equal(t, []float64{10, 20, 30}, f.Taps(), "New must copy taps")
	assert.Equal(t, []float64{30, 20, 10}, f.Reversed().Taps())
	assert.InDelta(t, 60.0, f.Sum(), 0)

	_, err = New(nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWindow_Coefficients(t *testing.T) {
	for _, w := range []Window{Hamming, Hann, Blackman, Kaiser(5)} {
		coeffs := w.Coefficients(testTaps15)
		assert.Len(t, coeffs, testTaps15)
		testutil.AssertSymmetric(t, coeffs, symmetryTolerance)
		testutil.AssertCenterIsMax(t, coeffs)
	}
	assert.InDelta(t, 1.0, Kaiser(5).Coefficients(testTaps15)[7], 1e-12)
	assert.Empty(t, Hamming.Coefficients(0))
}

func TestParseWindowType(t *testing.T) {
	for typ, name := range windowNames {
		got, err := ParseWindowType(name)
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	got, err := ParseWindowType("  Hamming ")
	require.NoError(t, err)
	assert.Equal(t, WindowHamming, got)

	got, err = ParseWindowType("blackmanharris")
	require.NoError(t, err)
	assert.Equal(t, WindowBlackmanHarris, got)

	_, err = ParseWindowType("triangle")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestComputeFrequencyResponse(t *testing.T) {
	// Moving average of 4 has a null at fs/4.
	r := ComputeFrequencyResponse([]float64{0.25, 0.25, 0.25, 0.25}, 8)
	require.Len(t, r.Magnitude, 8)
	assert.InDelta(t, 1.0, r.Magnitude[0], 1e-12)
	assert.InDelta(t, 0.0, r.Magnitude[4], 1e-12)
	assert.InDelta(t, 0.25, r.Frequencies[4], 0)

	assert.Len(t, ComputeFrequencyResponse([]float64{1}, 0).Frequencies, defaultResponsePoints)
}

func TestMagnitudeDB(t *testing.T) {
	assert.InDelta(t, 0.0, MagnitudeDB(1), 1e-12)
	assert.InDelta(t, -20.0, MagnitudeDB(0.1), 1e-12)
	assert.InDelta(t, -200.0, MagnitudeDB(0), 1e-9)
}

func BenchmarkDesignLowpassFIR(b *testing.B) {
	for b.Loop() {
		_, _ = DesignLowpassFIR(testTaps101, testCutoff, testSampleRate, Hamming)
	}
}
