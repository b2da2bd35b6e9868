package iir

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"

	"github.com/tphakala/go-stream-decimator/internal/simdops"
)

// Cascade runs sections in series through one biquad.Chain per branch.
// Real samples use a single chain; complex samples run their real and
// imaginary parts through two independent chains. float32 data is widened
// to float64 at the boundary. One instance carries the state of one stream
// and is not safe for concurrent use.
type Cascade[S simdops.Sample] struct {
	coeffs []Coefficients
	re, im *biquad.Chain

	bufRe, bufIm []float64
}

// NewCascade builds a cascade from section coefficients, first section first.
func NewCascade[S simdops.Sample](coeffs ...Coefficients) (*Cascade[S], error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("%w: cascade needs at least one section", ErrInvalidDesign)
	}
	for i, cf := range coeffs {
		if !Stable(cf) {
			return nil, fmt.Errorf("%w: section %d is unstable", ErrInvalidDesign, i+1)
		}
	}

	own := append([]Coefficients(nil), coeffs...)
	c := &Cascade[S]{coeffs: own, re: biquad.NewChain(own)}
	var zero S
	switch any(zero).(type) {
	case complex64, complex128:
		c.im = biquad.NewChain(own)
	}
	return c, nil
}

// Process filters chunk and returns a new slice of the same length.
// chunk is not modified.
func (c *Cascade[S]) Process(chunk []S) []S {
	out := make([]S, len(chunk))
	copy(out, chunk)
	c.ProcessInPlace(out)
	return out
}

// ProcessInPlace filters buf in place.
func (c *Cascade[S]) ProcessInPlace(buf []S) {
	if len(buf) == 0 {
		return
	}
	switch b := any(buf).(type) {
	case []float64:
		c.re.ProcessBlock(b)
	case []float32:
		re := c.scratch(len(b))
		for i, v := range b {
			re[i] = float64(v)
		}
		c.re.ProcessBlock(re)
		for i, v := range re {
			b[i] = float32(v)
		}
	case []complex128:
		re, im := c.split(len(b))
		for i, v := range b {
			re[i], im[i] = real(v), imag(v)
		}
		c.re.ProcessBlock(re)
		c.im.ProcessBlock(im)
		for i := range b {
			b[i] = complex(re[i], im[i])
		}
	case []complex64:
		re, im := c.split(len(b))
		for i, v := range b {
			re[i], im[i] = float64(real(v)), float64(imag(v))
		}
		c.re.ProcessBlock(re)
		c.im.ProcessBlock(im)
		for i := range b {
			b[i] = complex(float32(re[i]), float32(im[i]))
		}
	}
}

func (c *Cascade[S]) scratch(n int) []float64 {
	if cap(c.bufRe) < n {
		c.bufRe = make([]float64, n)
	}
	return c.bufRe[:n]
}

func (c *Cascade[S]) split(n int) (re, im []float64) {
	if cap(c.bufIm) < n {
		c.bufIm = make([]float64, n)
	}
	return c.scratch(n), c.bufIm[:n]
}

// Reset zeroes the state of every branch.
func (c *Cascade[S]) Reset() {
	c.re.Reset()
	if c.im != nil {
		c.im.Reset()
	}
}

// NumSections returns the number of sections.
func (c *Cascade[S]) NumSections() int {
	return c.re.NumSections()
}

// Coefficients returns a copy of the section coefficients.
func (c *Cascade[S]) Coefficients() []Coefficients {
	return append([]Coefficients(nil), c.coeffs...)
}

// Response evaluates the cascade transfer function at freqHz.
func (c *Cascade[S]) Response(freqHz, sampleRate float64) complex128 {
	return c.re.Response(freqHz, sampleRate)
}
