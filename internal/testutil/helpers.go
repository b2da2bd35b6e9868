// Package testutil provides reusable test helpers and fixtures for decimator tests.
package testutil

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	StreamingTolerance = 1e-4
	DCGainTolerance    = 1e-5
)

// Sample mirrors the engine sample constraint for helpers that compare streams.
type Sample interface {
	float32 | float64 | complex64 | complex128
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := range n / 2 {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%g != s[%d]=%g", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected DC gain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	sum := floats.Sum(coeffs)
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %g, want %g", sum, expectedGain)
}

// AssertOddLength verifies that a slice has an odd length.
func AssertOddLength(t *testing.T, s []float64) bool {
	t.Helper()
	return assert.Equal(t, 1, len(s)%2, "slice length %d is not odd", len(s))
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax(t *testing.T, s []float64) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	center := len(s) / 2
	return assert.Equal(t, center, floats.MaxIdx(s), "peak is not at center index %d", center)
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%g, actual=%g)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %g is outside range [%g, %g]", value, minVal, maxVal)
	}
	return true
}

// AssertSamplesClose compares two sample streams element-wise.
// Tolerance is relative to max(1, |want|) so large accumulations are not
// penalised for ordinary rounding.
func AssertSamplesClose[S Sample](t *testing.T, want, got []S, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), "stream length mismatch") {
		return false
	}
	for i := range want {
		w := toComplex(want[i])
		diff := cmplx.Abs(toComplex(got[i]) - w)
		scale := math.Max(1, cmplx.Abs(w))
		if diff > tolerance*scale {
			return assert.Fail(t, "stream mismatch",
				"sample %d: got %v, want %v (|diff|=%g)", i, got[i], want[i], diff)
		}
	}
	return true
}

// AssertFloatsApprox is a gonum-backed element-wise comparison for real slices.
func AssertFloatsApprox(t *testing.T, want, got []float64, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return false
	}
	return assert.True(t, floats.EqualApprox(want, got, tolerance),
		"slices differ beyond %g:\nwant %v\ngot  %v", tolerance, want, got)
}

func toComplex[S Sample](v S) complex128 {
	switch x := any(v).(type) {
	case float32:
		return complex(float64(x), 0)
	case float64:
		return complex(x, 0)
	case complex64:
		return complex128(x)
	case complex128:
		return x
	}
	return 0
}

// Fixture builds deterministic random streams for one test.
// Construct a new Fixture per test instead of sharing buffers between tests.
type Fixture struct {
	rng *rand.Rand
}

// NewFixture returns a fixture seeded with seed.
func NewFixture(seed uint64) *Fixture {
	return &Fixture{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Real returns n uniform samples in [-1, 1).
func (f *Fixture) Real(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f.rng.Float64()*2 - 1
	}
	return out
}

// Complex returns n I/Q samples with both branches uniform in [-1, 1).
func (f *Fixture) Complex(n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(f.rng.Float64()*2-1, f.rng.Float64()*2-1)
	}
	return out
}

// Intn returns a uniform integer in [0, n).
func (f *Fixture) Intn(n int) int {
	return f.rng.IntN(n)
}

// Partition splits total into consecutive chunk lengths. Lengths are drawn
// from [0, maxChunk], so empty chunks and chunks shorter than any filter occur.
func (f *Fixture) Partition(total, maxChunk int) []int {
	var sizes []int
	for remaining := total; remaining > 0; {
		n := min(f.rng.IntN(maxChunk+1), remaining)
		sizes = append(sizes, n)
		remaining -= n
	}
	return sizes
}

// Chunks slices stream according to sizes. The chunks alias stream.
func Chunks[S Sample](stream []S, sizes []int) [][]S {
	out := make([][]S, 0, len(sizes))
	pos := 0
	for _, n := range sizes {
		out = append(out, stream[pos:pos+n])
		pos += n
	}
	return out
}
