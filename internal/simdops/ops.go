// Package simdops provides the FIR kernels used by the decimation engine.
// Real branches delegate to github.com/tphakala/simd; complex samples are
// split into real and imaginary branches that run through the same real
// kernels, so the branches never mix.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Sample is the type constraint for stream elements: real scalars or
// complex I/Q pairs.
type Sample interface {
	float32 | float64 | complex64 | complex128
}

// Ops provides SIMD operations for one real branch type F.
// Function pointers allow type-safe generic code while delegating
// to optimized type-specific implementations.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// ConvolveValid computes dst[i] = Σ signal[i+j] * kernel[j]
	// for i in [0, len(signal)-len(kernel)].
	ConvolveValid func(dst, signal, kernel []F)

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

// Pre-instantiated operations for each branch type.
var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		ConvolveValid:    f32.ConvolveValid,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		ConvolveValid:    f64.ConvolveValid,
		Scale:            f64.Scale,
	}
)

// For returns the Ops instance for type F.
// The type switch happens at instantiation time, not in hot paths.
func For[F Float]() *Ops[F] {
	var zero F
	var ops any
	switch any(zero).(type) {
	case float32:
		ops = &ops32
	case float64:
		ops = &ops64
	}
	typed, ok := ops.(*Ops[F])
	if !ok {
		panic("simdops: type assertion failed")
	}
	return typed
}

// Float32Ops returns the float32 SIMD operations.
// Convenience function for non-generic code.
func Float32Ops() *Ops[float32] {
	return &ops32
}

// Float64Ops returns the float64 SIMD operations.
// Convenience function for non-generic code.
func Float64Ops() *Ops[float64] {
	return &ops64
}

// correlate writes dst[k] = Σ_j samples[k·step+j]·taps[j] on one real branch.
// A unit step uses the valid-correlation kernel.
func correlate[F Float](ops *Ops[F], dst, samples, taps []F, step int) {
	n := len(taps)
	if step == 1 {
		ops.ConvolveValid(dst, samples[:len(dst)+n-1], taps)
		return
	}
	for k := range dst {
		start := k * step
		dst[k] = ops.DotProductUnsafe(samples[start:start+n], taps)
	}
}

func convertTaps[F Float](taps []float64) []F {
	out := make([]F, len(taps))
	for i, v := range taps {
		out[i] = F(v)
	}
	return out
}
