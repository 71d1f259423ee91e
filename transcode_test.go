// SPDX-License-Identifier: EPL-2.0

package audxcode

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/aiff"
	"github.com/ik5/audxcode/formats/wav"
	"github.com/ik5/audxcode/pipeline"
)

// writeWAV stores interleaved s16 samples as a WAV file.
func writeWAV(t testing.TB, path string, rate, channels int, samples []int16) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	mux, err := wav.Container{}.NewMuxer(f, audio.StreamInfo{
		Codec:  audio.CodecPCMS16LE,
		Format: audio.Format{SampleRate: rate, Channels: channels},
	})
	if err != nil {
		t.Fatalf("NewMuxer() error = %v", err)
	}

	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	if err := mux.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	if err := mux.WritePacket(&audio.Packet{Data: data, Samples: len(samples) / channels}); err != nil {
		t.Fatalf("WritePacket() error = %v", err)
	}
	if err := mux.WriteTrailer(); err != nil {
		t.Fatalf("WriteTrailer() error = %v", err)
	}
}

// readAll returns the stream info and the concatenated packet payloads.
func readAll(t *testing.T, path string, opener audio.DemuxerOpener) (audio.StreamInfo, []byte) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	defer f.Close()

	d, err := opener.Open(f)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	defer d.Close()

	var data []byte
	for {
		p, err := d.ReadPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadPacket() error = %v", err)
		}
		data = append(data, p.Data...)
	}

	return d.Streams()[0], data
}

func ramp(n, channels int) []int16 {
	s := make([]int16, n*channels)
	for i := range s {
		s[i] = int16((i*97)%60000 - 30000)
	}
	return s
}

func quiet() []pipeline.Option {
	return []pipeline.Option{pipeline.WithMetrics(nil)}
}

func TestTranscodeFile_WAVToWAV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.wav"), filepath.Join(dir, "out.wav")
	samples := ramp(5000, 2)
	writeWAV(t, in, 8000, 2, samples)

	stats, err := TranscodeFile(context.Background(), nil, in, out, Output{FrameSize: 4096}, quiet()...)
	if err != nil {
		t.Fatalf("TranscodeFile() error = %v", err)
	}

	if stats.SamplesEncoded != 5000 {
		t.Errorf("SamplesEncoded = %d, want 5000", stats.SamplesEncoded)
	}
	if stats.FramesEncoded != 2 || stats.FinalFrameSamples != 904 {
		t.Errorf("FramesEncoded = %d, FinalFrameSamples = %d, want 2 and 904",
			stats.FramesEncoded, stats.FinalFrameSamples)
	}

	info, got := readAll(t, out, wav.Container{})
	if info.Codec != audio.CodecPCMS16LE || info.Format.Channels != 2 || info.Format.SampleRate != 8000 {
		t.Errorf("output stream = %+v, want pcm_s16le 8000 Hz stereo", info)
	}
	_, want := readAll(t, in, wav.Container{})
	if !bytes.Equal(got, want) {
		t.Errorf("output samples differ from input (%d vs %d bytes)", len(got), len(want))
	}
}

func TestTranscodeFile_WAVToAIFF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.wav"), filepath.Join(dir, "out.aiff")
	samples := ramp(3000, 1)
	writeWAV(t, in, 22050, 1, samples)

	if _, err := TranscodeFile(context.Background(), nil, in, out, Output{}, quiet()...); err != nil {
		t.Fatalf("TranscodeFile() error = %v", err)
	}

	info, data := readAll(t, out, aiff.Container{})
	if info.Codec != audio.CodecPCMS16BE {
		t.Errorf("output codec = %q, want %q", info.Codec, audio.CodecPCMS16BE)
	}
	if len(data) != len(samples)*2 {
		t.Fatalf("output has %d bytes, want %d", len(data), len(samples)*2)
	}
	for i, want := range samples {
		if got := int16(binary.BigEndian.Uint16(data[i*2:])); got != want {
			t.Fatalf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func TestTranscodeFile_Downmix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.wav"), filepath.Join(dir, "out.wav")

	samples := make([]int16, 100*2)
	for i := 0; i < len(samples); i += 2 {
		samples[i], samples[i+1] = 1000, 3000
	}
	writeWAV(t, in, 8000, 2, samples)

	if _, err := TranscodeFile(context.Background(), nil, in, out, Output{Channels: 1}, quiet()...); err != nil {
		t.Fatalf("TranscodeFile() error = %v", err)
	}

	info, data := readAll(t, out, wav.Container{})
	if info.Format.Channels != 1 {
		t.Errorf("output channels = %d, want 1", info.Format.Channels)
	}
	if len(data) != 200 {
		t.Fatalf("output has %d bytes, want 200", len(data))
	}
	for i := 0; i < len(data); i += 2 {
		if got := int16(binary.LittleEndian.Uint16(data[i:])); got != 2000 {
			t.Fatalf("sample %d = %d, want 2000", i/2, got)
		}
	}
}

func TestTranscodeFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeWAV(t, in, 8000, 1, ramp(10, 1))

	tests := []struct {
		name    string
		in, out string
		kind    audio.Kind
		target  error
	}{
		{"unknown input", filepath.Join(dir, "in.xyz"), filepath.Join(dir, "a.wav"), audio.KindConfiguration, audio.ErrUnknownFormat},
		{"unknown output", in, filepath.Join(dir, "b.xyz"), audio.KindConfiguration, audio.ErrUnknownFormat},
		{"no mp3 encoder", in, filepath.Join(dir, "c.mp3"), audio.KindConfiguration, audio.ErrNoEncoder},
		{"missing input", filepath.Join(dir, "missing.wav"), filepath.Join(dir, "d.wav"), audio.KindIO, os.ErrNotExist},
		{"missing output dir", in, filepath.Join(dir, "nope", "e.wav"), audio.KindIO, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := TranscodeFile(context.Background(), nil, tt.in, tt.out, Output{}, quiet()...)
			if !errors.Is(err, tt.target) {
				t.Errorf("TranscodeFile() error = %v, want %v", err, tt.target)
			}
			if got := audio.KindOf(err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
			if _, serr := os.Stat(tt.out); !errors.Is(serr, os.ErrNotExist) {
				t.Errorf("output %s exists after failure", tt.out)
			}
		})
	}
}

func TestTranscodeFile_NotWAV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.wav"), filepath.Join(dir, "out.wav")
	if err := os.WriteFile(in, []byte("not a wav file at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := TranscodeFile(context.Background(), nil, in, out, Output{}, quiet()...)
	if !errors.Is(err, wav.ErrNotWavFile) {
		t.Errorf("TranscodeFile() error = %v, want ErrNotWavFile", err)
	}
	if _, serr := os.Stat(out); !errors.Is(serr, os.ErrNotExist) {
		t.Errorf("output exists after failure")
	}
}

func TestEncoderParams(t *testing.T) {
	t.Parallel()

	in := audio.Format{SampleRate: 44100, Channels: 2}

	got := encoderParams(Output{}, audio.CodecPCMS16BE, in)
	want := audio.EncoderParams{Codec: audio.CodecPCMS16BE, SampleRate: 44100, Channels: 2}
	if got != want {
		t.Errorf("encoderParams(zero) = %+v, want %+v", got, want)
	}

	got = encoderParams(Output{Codec: audio.CodecPCMS24LE, Channels: 1, BitRate: 64000, FrameSize: 512}, audio.CodecPCMS16LE, in)
	want = audio.EncoderParams{Codec: audio.CodecPCMS24LE, SampleRate: 44100, Channels: 1, BitRate: 64000, FrameSize: 512}
	if got != want {
		t.Errorf("encoderParams(set) = %+v, want %+v", got, want)
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	inputs, outputs := DefaultRegistry().Extensions()

	wantIn := []string{"aif", "aiff", "mp3", "ogg", "opus", "wav"}
	if len(inputs) != len(wantIn) {
		t.Fatalf("inputs = %v, want %v", inputs, wantIn)
	}
	for i := range wantIn {
		if inputs[i] != wantIn[i] {
			t.Errorf("inputs[%d] = %q, want %q", i, inputs[i], wantIn[i])
		}
	}
	if len(outputs) != len(wantIn) {
		t.Errorf("outputs = %v, want %v", outputs, wantIn)
	}

	r := DefaultRegistry()
	for _, codec := range []string{audio.CodecPCMS16LE, audio.CodecPCMF32LE, audio.CodecOpus} {
		if _, ok := r.Decoder(codec); !ok {
			t.Errorf("Decoder(%q) not registered", codec)
		}
	}
	if _, ok := r.Encoder(audio.CodecMP3); ok {
		t.Errorf("Encoder(mp3) registered, want none")
	}
}

func TestOggOpener_Garbage(t *testing.T) {
	t.Parallel()

	o, _ := DefaultRegistry().Demuxer("ogg")
	_, err := o.Open(bytes.NewReader([]byte("not an ogg stream")))
	if !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Open() error = %v, want ErrUnknownFormat", err)
	}
	if !audio.IsKind(err, audio.KindIO) {
		t.Errorf("KindOf() = %v, want i/o error", audio.KindOf(err))
	}
}

func TestIsUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{audio.NewError(audio.KindConfiguration, "open encoder", audio.ErrNoEncoder), true},
		{audio.ErrUnknownFormat, true},
		{audio.NewError(audio.KindIO, "open input", os.ErrNotExist), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsUnsupported(tt.err); got != tt.want {
			t.Errorf("IsUnsupported(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func BenchmarkTranscodeFile_WAV(b *testing.B) {
	dir := b.TempDir()
	in, out := filepath.Join(dir, "in.wav"), filepath.Join(dir, "out.wav")

	writeWAV(b, in, 44100, 2, ramp(44100, 2))

	b.ReportAllocs()

	for range b.N {
		if _, err := TranscodeFile(context.Background(), nil, in, out, Output{}, quiet()...); err != nil {
			b.Fatal(err)
		}
	}
}
