package pipeline

// DSP design constants
const (
	// dB per bit of precision (20 * log10(2) ≈ 6.02)
	dbPerBit = 6.02

	// Precision limits in bits.
	minPrecision = 8
	maxPrecision = 33
)

// Pipeline stage capacities
const (
	defaultStageCapacity = 4 // Initial capacity for stages slice

	// Largest single stage accepted by PlanFactors; larger prime factors
	// would need impractically long filters.
	maxStageFactor = 257
)
