// Package decimator provides streaming FIR lowpass filtering and integer
// decimation of real audio and complex I/Q sample streams in pure Go.
//
// # Features
//
//   - Windowed-sinc lowpass design (Hamming, Hann, Blackman, Kaiser, ...)
//   - Batch and streaming decimation with identical results for any chunking
//   - float32, float64, complex64 and complex128 samples from one generic core
//   - Optional SIMD acceleration for real samples via github.com/tphakala/simd
//   - Zero-phase forward-backward filtering (FiltFilt)
//   - Multistage cascades for large factors and streaming Butterworth IIR
//
// # Quick Start
//
// For one-shot decimation of a complete signal:
//
//	out, err := decimator.DecimateMono(input, 48000, 4, decimator.QualityHigh)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For a stream that arrives in chunks:
//
//	d, err := decimator.New[complex64](&decimator.Config{
//	    InputRate: 2_400_000,
//	    Factor:    50,
//	    Quality:   decimator.QualitySpec{Preset: decimator.QualityMedium},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for chunk := range chunks {
//	    emit(d.Process(chunk)) // may be empty
//	}
//
// Concatenating the outputs of successive Process calls gives exactly what
// Decimate returns for the concatenated input. The filter's tail is carried
// between calls, so no samples are lost or duplicated at chunk boundaries.
// There is no Flush: samples still held when the stream ends never complete
// a full filter window and are discarded.
//
// # Explicit filters
//
// When the taps are known, skip the quality layer:
//
//	f, err := decimator.DesignLowpassFIR(63, 3000, 48000, decimator.Hamming)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d, err := decimator.NewStreamingDecimator[float64](f, 4)
//
// Decimate computes out[k] = Σ samples[k·factor+j]·f[j], a strided
// cross-correlation. Designed lowpass filters are symmetric, so this equals
// convolution. Complex samples are filtered branch-wise by the real taps.
//
// # Concurrency
//
// Decimators and filters carry the state of exactly one stream and are not
// safe for concurrent use. Filters are immutable and may be shared.
package decimator
