package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-stream-decimator/internal/filter"
)

const (
	testSampleRate = 48000.0
	testStreamLen  = 600
)

// designFilter returns a Hamming lowpass with its cutoff below the
// post-decimation Nyquist.
func designFilter(t testing.TB, length, factor int) filter.Filter {
	t.Helper()
	cutoff := 0.4 * testSampleRate / float64(factor)
	f, err := filter.DesignLowpassFIR(length, cutoff, testSampleRate, filter.Hamming)
	require.NoError(t, err)
	return f
}

func mustFilter(t testing.TB, taps ...float64) filter.Filter {
	t.Helper()
	f, err := filter.New(taps)
	require.NoError(t, err)
	return f
}

// streamDecimate feeds chunks through a fresh decimator and concatenates the outputs.
func streamDecimate[S Sample](t testing.TB, f filter.Filter, factor int, chunks [][]S) []S {
	t.Helper()
	d, err := NewStreamingDecimator[S](f, factor)
	require.NoError(t, err)
	out := []S{}
	for _, c := range chunks {
		out = append(out, d.Process(c)...)
	}
	return out
}
