package engine

// History buffer sizing
const (
	// Extra history capacity, in units of filter length, reserved up front
	// so appending a chunk rarely reallocates.
	historyBufferMultiplier = 2
)

// Statistics keys reported by StreamingDecimator.GetStatistics.
const (
	statSamplesIn  = "samplesIn"
	statSamplesOut = "samplesOut"
)
