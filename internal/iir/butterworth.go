package iir

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// DesignButterworthLowpass returns the sections of an order-N Butterworth
// lowpass. Odd orders end with a first-order section (B2 = A2 = 0).
func DesignButterworthLowpass(order int, cutoff, sampleRate float64) ([]Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: Butterworth order must be positive, got %d", ErrInvalidDesign, order)
	}
	if err := validateBand(sampleRate, cutoff); err != nil {
		return nil, err
	}

	sections := design.ButterworthLP(cutoff, order, sampleRate)
	if len(sections) != (order+1)/2 {
		return nil, fmt.Errorf("%w: expected %d sections for order %d, got %d",
			ErrInvalidDesign, (order+1)/2, order, len(sections))
	}
	for i, s := range sections {
		if !Stable(s) {
			return nil, fmt.Errorf("%w: section %d is unstable", ErrInvalidDesign, i+1)
		}
	}
	return sections, nil
}
