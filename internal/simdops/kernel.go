package simdops

// Kernel is a real FIR kernel bound to sample type S.
//
// Real samples are correlated with the taps directly. Complex samples are
// split into real and imaginary branches, each branch is correlated with the
// same real taps and the results are recombined, so a non-finite value in
// one branch never reaches the other. A Kernel reuses scratch buffers and is
// not safe for concurrent use.
type Kernel[S Sample] struct {
	n   int
	run func(dst, samples []S, step int)
}

// NewKernel binds taps to sample type S. taps is copied.
func NewKernel[S Sample](taps []float64) *Kernel[S] {
	var zero S
	var run any
	switch any(zero).(type) {
	case float32:
		t := convertTaps[float32](taps)
		run = func(dst, samples []float32, step int) {
			correlate(&ops32, dst, samples, t, step)
		}
	case float64:
		t := convertTaps[float64](taps)
		run = func(dst, samples []float64, step int) {
			correlate(&ops64, dst, samples, t, step)
		}
	case complex64:
		run = (&splitKernel[float32]{ops: &ops32, taps: convertTaps[float32](taps)}).runComplex64
	case complex128:
		run = (&splitKernel[float64]{ops: &ops64, taps: convertTaps[float64](taps)}).runComplex128
	}
	typed, ok := run.(func(dst, samples []S, step int))
	if !ok {
		panic("simdops: unsupported sample type")
	}
	return &Kernel[S]{n: len(taps), run: typed}
}

// Len returns the number of taps.
func (k *Kernel[S]) Len() int {
	return k.n
}

// Correlate writes dst[i] = Σ_j samples[i·step+j]·taps[j] for every i.
// The caller guarantees (len(dst)-1)·step + Len() <= len(samples).
func (k *Kernel[S]) Correlate(dst, samples []S, step int) {
	if len(dst) == 0 {
		return
	}
	k.run(dst, samples, step)
}

// splitKernel runs complex samples as two real branches of type F.
type splitKernel[F Float] struct {
	ops  *Ops[F]
	taps []F

	re, im       []F
	outRe, outIm []F
}

// buffers returns scratch input branches of length span and output
// branches of length n.
func (k *splitKernel[F]) buffers(span, n int) (re, im, outRe, outIm []F) {
	if cap(k.re) < span {
		k.re = make([]F, span)
		k.im = make([]F, span)
	}
	if cap(k.outRe) < n {
		k.outRe = make([]F, n)
		k.outIm = make([]F, n)
	}
	return k.re[:span], k.im[:span], k.outRe[:n], k.outIm[:n]
}

func (k *splitKernel[F]) runComplex64(dst, samples []complex64, step int) {
	span := (len(dst)-1)*step + len(k.taps)
	re, im, outRe, outIm := k.buffers(span, len(dst))
	for i, v := range samples[:span] {
		re[i], im[i] = F(real(v)), F(imag(v))
	}
	correlate(k.ops, outRe, re, k.taps, step)
	correlate(k.ops, outIm, im, k.taps, step)
	for i := range dst {
		dst[i] = complex(float32(outRe[i]), float32(outIm[i]))
	}
}

func (k *splitKernel[F]) runComplex128(dst, samples []complex128, step int) {
	span := (len(dst)-1)*step + len(k.taps)
	re, im, outRe, outIm := k.buffers(span, len(dst))
	for i, v := range samples[:span] {
		re[i], im[i] = F(real(v)), F(imag(v))
	}
	correlate(k.ops, outRe, re, k.taps, step)
	correlate(k.ops, outIm, im, k.taps, step)
	for i := range dst {
		dst[i] = complex(float64(outRe[i]), float64(outIm[i]))
	}
}
