// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audxcode/audio"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	chunk        int // values per Read, 0 for unlimited
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }
func (m *mockOggVorbisReader) Length() int64   { return int64(len(m.samples) / m.channels) }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.samples)-m.offset)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	copy(buf, m.samples[m.offset:m.offset+n])
	m.offset += n

	return n, nil
}

func valueAt(data []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
}

func TestOpen_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Container{}.Open(bytes.NewReader([]byte("This is not an Ogg stream")))
	if !errors.Is(err, ErrNotVorbisFile) || !audio.IsKind(err, audio.KindIO) {
		t.Errorf("Open() error = %v, want i/o ErrNotVorbisFile", err)
	}
}

func TestDemuxer_StreamInfo(t *testing.T) {
	t.Parallel()

	d := newDemuxer(&mockOggVorbisReader{sampleRate: 48000, channels: 2, samples: make([]float32, 960)}, 0)

	info := d.Streams()[0]
	if info.Codec != audio.CodecPCMF32LE || info.SourceCodec != audio.CodecVorbis {
		t.Errorf("codec = %q from %q, want pcm_f32le from vorbis", info.Codec, info.SourceCodec)
	}
	if info.Format.SampleRate != 48000 || info.Format.Channels != 2 {
		t.Errorf("Format = %+v, want 48000 Hz stereo", info.Format)
	}
	if info.Duration != 480 {
		t.Errorf("Duration = %d, want 480", info.Duration)
	}
}

func TestDemuxer_ReadPacket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		channels  int
		values    int
		chunk     int
		packet    int
		wantSizes []int
	}{
		{"mono whole reads", 1, 25, 0, 10, []int{10, 10, 5}},
		{"stereo short reads", 2, 50, 3, 10, []int{10, 10, 5}},
		{"exact multiple", 2, 40, 7, 10, []int{10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := make([]float32, tt.values)
			for i := range samples {
				samples[i] = float32(i) / 100
			}
			d := newDemuxer(&mockOggVorbisReader{
				sampleRate: 44100, channels: tt.channels, samples: samples, chunk: tt.chunk,
			}, tt.packet)

			var sizes []int
			var pts int64
			offset := 0
			for {
				p, err := d.ReadPacket()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadPacket() error = %v", err)
				}
				if p.PTS != pts {
					t.Errorf("PTS = %d, want %d", p.PTS, pts)
				}
				if got := valueAt(p.Data, 0); got != samples[offset] {
					t.Errorf("first value = %v, want %v", got, samples[offset])
				}
				offset += len(p.Data) / 4
				pts += int64(p.Samples)
				sizes = append(sizes, p.Samples)
			}

			if len(sizes) != len(tt.wantSizes) {
				t.Fatalf("packet sizes = %v, want %v", sizes, tt.wantSizes)
			}
			for i := range sizes {
				if sizes[i] != tt.wantSizes[i] {
					t.Errorf("packet sizes = %v, want %v", sizes, tt.wantSizes)
					break
				}
			}
		})
	}
}

func TestDemuxer_ReadError(t *testing.T) {
	t.Parallel()

	d := newDemuxer(&mockOggVorbisReader{sampleRate: 44100, channels: 1, returnErrors: true}, 0)
	if _, err := d.ReadPacket(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadPacket() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func BenchmarkDemuxer_ReadPacket(b *testing.B) {
	samples := make([]float32, 44100*2)

	b.ReportAllocs()

	for range b.N {
		d := newDemuxer(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples}, 0)
		for {
			if _, err := d.ReadPacket(); err != nil {
				break
			}
		}
	}
}
