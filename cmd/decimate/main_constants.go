package main

// Default command-line flag values
const (
	defaultInputRate = 48000.0 // DAT/DVD sample rate
	defaultFactor    = 4
)

// Test signal parameters
const (
	testSignalFrequency = 1000.0 // 1 kHz test tone
	testSignalSamples   = 48000  // One second at the default rate
	testChunkSize       = 4096
)

// Demo sample rates
const (
	sampleRateDAT   = 48000.0
	sampleRateHiRes = 96000.0
	sampleRateSDR   = 2400000.0 // Typical RTL-SDR capture rate
)
