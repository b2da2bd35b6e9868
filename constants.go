package decimator

// Quality precision levels in bits
const (
	precision8Bit  = 8
	precision12Bit = 12
	precision16Bit = 16
	precision20Bit = 20
	precision24Bit = 24
	precision33Bit = 33
)

// Quality preset parameters, as fractions of the output Nyquist.
const (
	// Low quality (12-bit)
	lowPassbandEnd   = 0.70
	lowStopbandBegin = 1.0

	// Medium quality (16-bit)
	mediumPassbandEnd   = 0.80
	mediumStopbandBegin = 1.0

	// High quality (20-bit)
	highPassbandEnd   = 0.85
	highStopbandBegin = 1.0

	// Very high quality (24-bit)
	veryHighPassbandEnd   = 0.90
	veryHighStopbandBegin = 1.0
)

// Decimation factor limits
const (
	minFactor = 1
	maxFactor = 1 << 16
)

// Channel layout of split complex input.
const (
	iqBranches = 2 // I and Q
)
