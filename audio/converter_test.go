// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"
)

func TestNewConverter_RateMismatch(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(
		Format{SampleRate: 44100, Channels: 2},
		Format{SampleRate: 48000, Channels: 2},
	)
	if !IsKind(err, KindConfiguration) {
		t.Fatalf("NewConverter() error = %v, want configuration error", err)
	}
	if !errors.Is(err, ErrRateMismatch) {
		t.Errorf("NewConverter() error = %v, want ErrRateMismatch", err)
	}
}

func TestNewConverter_InvalidChannels(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(Format{SampleRate: 8000, Channels: 0}, Format{SampleRate: 8000, Channels: 2})
	if !errors.Is(err, ErrChannelCount) {
		t.Errorf("NewConverter() error = %v, want ErrChannelCount", err)
	}
}

func TestConverter_ChannelMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    [][]float32
		outCh int
		want  [][]float32
	}{
		{
			name:  "stereo passthrough",
			in:    [][]float32{{0.1, 0.2}, {-0.1, -0.2}},
			outCh: 2,
			want:  [][]float32{{0.1, 0.2}, {-0.1, -0.2}},
		},
		{
			name:  "stereo to mono",
			in:    [][]float32{{0.5, 1.0}, {0.5, 0.0}},
			outCh: 1,
			want:  [][]float32{{0.5, 0.5}},
		},
		{
			name:  "mono to stereo",
			in:    [][]float32{{0.25, -0.75}},
			outCh: 2,
			want:  [][]float32{{0.25, -0.75}, {0.25, -0.75}},
		},
		{
			name:  "quad to stereo",
			in:    [][]float32{{0.2}, {0.4}, {0.6}, {0.8}},
			outCh: 2,
			want:  [][]float32{{0.4}, {0.6}},
		},
		{
			name:  "quad to mono",
			in:    [][]float32{{0.25}, {0.25}, {0.5}, {1.0}},
			outCh: 1,
			want:  [][]float32{{0.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inFmt := Format{SampleRate: 8000, Channels: len(tt.in), SampleFormat: SampleF32}
			outFmt := Format{SampleRate: 8000, Channels: tt.outCh, SampleFormat: SampleF32}
			conv, err := NewConverter(inFmt, outFmt)
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}

			got, err := conv.Convert(&Frame{Format: inFmt, Samples: tt.in, PTS: 42})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if got.PTS != 42 {
				t.Errorf("PTS = %d, want 42", got.PTS)
			}
			if got.Channels() != tt.outCh {
				t.Fatalf("Channels() = %d, want %d", got.Channels(), tt.outCh)
			}
			for c := range tt.want {
				for i := range tt.want[c] {
					if math.Abs(float64(got.Samples[c][i]-tt.want[c][i])) > 1e-6 {
						t.Errorf("sample[%d][%d] = %v, want %v", c, i, got.Samples[c][i], tt.want[c][i])
					}
				}
			}
		})
	}
}

// The output must always carry exactly as many samples as the input.
func TestConverter_PreservesSampleCount(t *testing.T) {
	t.Parallel()

	inFmt := Format{SampleRate: 44100, Channels: 1, SampleFormat: SampleS16}
	outFmt := Format{SampleRate: 44100, Channels: 2, SampleFormat: SampleS16}
	conv, _ := NewConverter(inFmt, outFmt)

	for _, n := range []int{0, 1, 1024, 1152, 17} {
		got, err := conv.Convert(NewFrame(inFmt, n))
		if err != nil {
			t.Fatalf("Convert(%d) error = %v", n, err)
		}
		if got.NumSamples() != n {
			t.Errorf("Convert(%d) returned %d samples", n, got.NumSamples())
		}
	}
}

func TestConverter_Quantizes(t *testing.T) {
	t.Parallel()

	inFmt := Format{SampleRate: 8000, Channels: 1, SampleFormat: SampleF32}
	outFmt := Format{SampleRate: 8000, Channels: 1, SampleFormat: SampleS16}
	conv, _ := NewConverter(inFmt, outFmt)

	got, _ := conv.Convert(&Frame{Format: inFmt, Samples: [][]float32{{1.7, -3, 0.1}}})

	if got.Samples[0][0] != float32(32767)/32768 {
		t.Errorf("clamped max = %v, want %v", got.Samples[0][0], float32(32767)/32768)
	}
	if got.Samples[0][1] != -1 {
		t.Errorf("clamped min = %v, want -1", got.Samples[0][1])
	}
	if scaled := got.Samples[0][2] * 32768; scaled != float32(math.Round(float64(scaled))) {
		t.Errorf("0.1 not on the 16-bit grid: %v", got.Samples[0][2])
	}
}

func TestConverter_WrongInputLayout(t *testing.T) {
	t.Parallel()

	conv, _ := NewConverter(Format{SampleRate: 8000, Channels: 2}, Format{SampleRate: 8000, Channels: 2})

	_, err := conv.Convert(NewFrame(Format{SampleRate: 8000, Channels: 1}, 10))
	if !errors.Is(err, ErrLayoutMismatch) {
		t.Errorf("Convert() error = %v, want ErrLayoutMismatch", err)
	}
}

func BenchmarkConverter_StereoToMono(b *testing.B) {
	inFmt := Format{SampleRate: 48000, Channels: 2, SampleFormat: SampleF32}
	outFmt := Format{SampleRate: 48000, Channels: 1, SampleFormat: SampleS16}
	conv, _ := NewConverter(inFmt, outFmt)
	in := NewFrame(inFmt, 4096)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		_, _ = conv.Convert(in)
	}
}
