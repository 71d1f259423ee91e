// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/audxcode/audio"
)

// Waveform returns the value of sample i on channel c.
type Waveform func(i, c int) float32

// Silence is a waveform of zeros.
func Silence(int, int) float32 { return 0 }

// Sine returns a waveform of the given frequency at sampleRate.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(i, c int) float32 {
		t := float64(i) / float64(sampleRate)
		return float32(0.5 * math.Sin(2*math.Pi*frequency*t))
	}
}

// Constant returns a waveform that always yields v.
func Constant(v float32) Waveform {
	return func(int, int) float32 { return v }
}

// Ramp yields the absolute sample index, offset by 1e6 per channel. It is
// not a valid normalized signal; it exists so tests can check that every
// sample arrives exactly once and in order.
func Ramp(i, c int) float32 { return float32(i + c*1_000_000) }

// NewFrame builds a frame of n samples whose first sample has absolute
// index start.
func NewFrame(format audio.Format, n int, start int64, wave Waveform) *audio.Frame {
	f := audio.NewFrame(format, n)
	f.PTS = start
	for c := range format.Channels {
		for i := range n {
			f.Samples[c][i] = wave(int(start)+i, c)
		}
	}

	return f
}

// Interleaved renders n samples of wave as an interleaved buffer.
func Interleaved(channels, n int, wave Waveform) []float32 {
	out := make([]float32, n*channels)
	for i := range n {
		for c := range channels {
			out[i*channels+c] = wave(i, c)
		}
	}

	return out
}
