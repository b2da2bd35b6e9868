package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	decimator "github.com/tphakala/go-stream-decimator"
	"github.com/tphakala/go-stream-decimator/internal/filter"
)

const testRate = 48000

// writeTestWAV writes a 16-bit WAV whose channel ch carries a tone at freqs[ch].
func writeTestWAV(t *testing.T, path string, frames int, freqs ...float64) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)

	channels := len(freqs)
	enc := wav.NewEncoder(f, testRate, bitsPerSample16, channels, wavFormatPCM)
	data := make([]int, frames*channels)
	for i := range frames {
		for ch, freq := range freqs {
			data[i*channels+ch] = int(0.5 * maxInt16 * math.Sin(2*math.Pi*freq*float64(i)/testRate))
		}
	}
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: testRate},
		SourceBitDepth: bitsPerSample16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func readTestWAV(t *testing.T, path string) *audio.IntBuffer {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf
}

func baseOptions(in, out string) options {
	return options{
		inputPath:  in,
		outputPath: out,
		factor:     4,
		quality:    decimator.QualityMedium,
		window:     filter.Hamming,
		parallel:   true,
		chunk:      1000,
	}
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	require.NoError(t, os.WriteFile(invalidFile, []byte("not a wav file"), 0o644))

	_, err := openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestCheckLayout(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		iq       bool
		want     streamLayout
		wantErr  bool
	}{
		{"mono", 1, false, layoutMono, false},
		{"iq", 2, true, layoutIQ, false},
		{"stereo without iq", 2, false, 0, true},
		{"mono flagged iq", 1, true, 0, true},
		{"surround", 6, false, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkLayout(tt.channels, tt.iq)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewProcessor_InfoAgreesAcrossLayouts(t *testing.T) {
	cfg := &decimator.Config{InputRate: testRate, Factor: 4, Quality: decimator.QualitySpec{Preset: decimator.QualityMedium}}

	mono, err := newProcessor(cfg, layoutMono, false)
	require.NoError(t, err)
	split, err := newProcessor(cfg, layoutIQ, false)
	require.NoError(t, err)

	assert.Equal(t, mono.info(), split.info())
}

func TestParseQuality(t *testing.T) {
	q, err := parseQuality("HIGH")
	require.NoError(t, err)
	assert.Equal(t, decimator.QualityHigh, q)

	_, err = parseQuality("ultra")
	require.Error(t, err)
}

func TestParseWindow(t *testing.T) {
	w, err := parseWindow("kaiser", 5)
	require.NoError(t, err)
	assert.Equal(t, filter.Kaiser(5), w)

	w, err = parseWindow("blackman", 5)
	require.NoError(t, err)
	assert.Equal(t, filter.WindowBlackman, w.Type)

	_, err = parseWindow("triangle", 0)
	require.Error(t, err)
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput("/nonexistent/dir/output.wav", testRate, 16, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestInterleaveRoundTrip(t *testing.T) {
	data := []int{100, -200, 300, -400, 500, -600}
	bufs := [][]float64{make([]float64, 3), make([]float64, 3)}
	deinterleaveInto(data, bufs, 2, 3, 1/maxInt16)
	assert.InDelta(t, 100/maxInt16, bufs[0][0], 1e-12)
	assert.InDelta(t, -600/maxInt16, bufs[1][2], 1e-12)

	dst := make([]int, 6)
	n := interleaveInto(bufs, dst, maxInt16)
	require.Equal(t, 6, n)
	for i := range data {
		assert.InDelta(t, data[i], dst[i], 1)
	}

	assert.Zero(t, interleaveInto(bufs, make([]int, 2), maxInt16), "short destination")
	assert.Equal(t, []int{int(maxInt16)}, func() []int {
		out := make([]int, 1)
		interleaveInto([][]float64{{3.5}}, out, maxInt16)
		return out
	}(), "clamped")
}

func TestProgressTracker_NonVerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, false)
	require.NotNil(t, tracker)
	tracker.reportIfNeeded(500)
	assert.Equal(t, 0, tracker.lastProgress)
}

func TestProgressTracker_VerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, true)
	tracker.reportIfNeeded(500)
	assert.Equal(t, 50, tracker.lastProgress)
}

func TestDecimateWAV_Mono(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.wav")
	out := filepath.Join(tmpDir, "out.wav")
	const frames = 24000
	writeTestWAV(t, in, frames, 1000)

	for _, fast := range []bool{false, true} {
		opts := baseOptions(in, out)
		opts.fast = fast
		stats, err := decimateWAV(opts)
		require.NoError(t, err)
		assert.Equal(t, 12000, stats.outputRate)
		assert.Equal(t, int64(frames), stats.inputFrames)

		buf := readTestWAV(t, out)
		assert.Equal(t, 12000, buf.Format.SampleRate)
		assert.Equal(t, 1, buf.Format.NumChannels)
		assert.Len(t, buf.Data, int(stats.outputFrames))
		assert.InDelta(t, 0.5*maxInt16, float64(peakInt(buf.Data[len(buf.Data)/2:], 1, 0)), 0.05*maxInt16)
	}
}

func TestDecimateWAV_IQ(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "iq.wav")
	out := filepath.Join(tmpDir, "base.wav")
	// I carries an in-band tone, Q a tone above the output Nyquist.
	writeTestWAV(t, in, 24000, 1000, 9000)

	for _, fast := range []bool{false, true} {
		opts := baseOptions(in, out)
		opts.iq = true
		opts.fast = fast
		stats, err := decimateWAV(opts)
		require.NoError(t, err)
		assert.Equal(t, "I/Q", stats.layout)

		buf := readTestWAV(t, out)
		require.Equal(t, 2, buf.Format.NumChannels)
		tail := buf.Data[len(buf.Data)/2:]
		assert.Greater(t, float64(peakInt(tail, 2, 0)), 0.4*maxInt16, "I tone should pass")
		assert.Less(t, float64(peakInt(tail, 2, 1)), 0.01*maxInt16, "Q tone should be rejected")
	}
}

func TestDecimateWAV_RejectsStereo(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "stereo.wav")
	writeTestWAV(t, in, 1000, 440, 880)

	_, err := decimateWAV(baseOptions(in, filepath.Join(tmpDir, "out.wav")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-iq")
}

func TestDecimateWAV_ExplicitTapsMultistage(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.wav")
	writeTestWAV(t, in, 12000, 500)

	opts := baseOptions(in, filepath.Join(tmpDir, "taps.wav"))
	opts.taps = 63
	opts.window = filter.Blackman
	stats, err := decimateWAV(opts)
	require.NoError(t, err)
	assert.Equal(t, "single-stage FIR", stats.algorithm)

	opts = baseOptions(in, filepath.Join(tmpDir, "multi.wav"))
	opts.factor = 8
	opts.multistage = true
	stats, err = decimateWAV(opts)
	require.NoError(t, err)
	assert.Contains(t, stats.algorithm, "cascade")
	assert.Equal(t, 6000, stats.outputRate)
}

func peakInt(data []int, channels, ch int) int {
	m := 0
	for i := ch; i < len(data); i += channels {
		m = max(m, data[i], -data[i])
	}
	return m
}
