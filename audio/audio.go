// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
)

// Codec names shared by demuxers, muxers and codec factories.
const (
	CodecPCMU8    = "pcm_u8"
	CodecPCMS8    = "pcm_s8"
	CodecPCMS16LE = "pcm_s16le"
	CodecPCMS16BE = "pcm_s16be"
	CodecPCMS24LE = "pcm_s24le"
	CodecPCMS24BE = "pcm_s24be"
	CodecPCMS32LE = "pcm_s32le"
	CodecPCMS32BE = "pcm_s32be"
	CodecPCMF32LE = "pcm_f32le"
	CodecOpus     = "opus"
	CodecMP3      = "mp3"
	CodecVorbis   = "vorbis"
)

// SampleFormat describes the precision a sample is carried with.
type SampleFormat int

const (
	SampleF32 SampleFormat = iota
	SampleU8
	SampleS8
	SampleS16
	SampleS24
	SampleS32
)

// BitDepth returns the number of significant bits per sample.
func (f SampleFormat) BitDepth() int {
	switch f {
	case SampleU8, SampleS8:
		return 8
	case SampleS16:
		return 16
	case SampleS24:
		return 24
	default:
		return 32
	}
}

// IsFloat reports whether samples are carried unquantized.
func (f SampleFormat) IsFloat() bool { return f == SampleF32 }

func (f SampleFormat) String() string {
	switch f {
	case SampleF32:
		return "f32"
	case SampleU8:
		return "u8"
	case SampleS8:
		return "s8"
	case SampleS16:
		return "s16"
	case SampleS24:
		return "s24"
	case SampleS32:
		return "s32"
	}

	return "unknown"
}

// Format is the sample layout of a stream: rate, channel count and
// sample precision.
type Format struct {
	SampleRate   int
	Channels     int
	SampleFormat SampleFormat
}

// Frame is a block of planar audio. Samples holds one slice per channel,
// all of the same length, with values normalized to [-1, 1].
type Frame struct {
	Format  Format
	Samples [][]float32
	// PTS is the position of the first sample in the stream, in samples.
	PTS int64
}

// NewFrame allocates a frame holding n samples per channel.
func NewFrame(format Format, n int) *Frame {
	f := &Frame{
		Format:  format,
		Samples: make([][]float32, format.Channels),
	}
	for c := range f.Samples {
		f.Samples[c] = make([]float32, n)
	}

	return f
}

// NumSamples returns the per-channel sample count.
func (f *Frame) NumSamples() int {
	if f == nil || len(f.Samples) == 0 {
		return 0
	}

	return len(f.Samples[0])
}

// Channels returns the number of planes in the frame.
func (f *Frame) Channels() int { return len(f.Samples) }

// Channel returns the samples of channel c.
func (f *Frame) Channel(c int) []float32 { return f.Samples[c] }

// Resize sets the per-channel length to n, reusing capacity when possible.
func (f *Frame) Resize(n int) {
	if len(f.Samples) != f.Format.Channels {
		f.Samples = make([][]float32, f.Format.Channels)
	}
	for c := range f.Samples {
		if cap(f.Samples[c]) < n {
			f.Samples[c] = make([]float32, n)
			continue
		}
		f.Samples[c] = f.Samples[c][:n]
	}
}

// Interleave writes the frame as interleaved samples into dst, growing it
// if needed, and returns the filled slice.
func (f *Frame) Interleave(dst []float32) []float32 {
	channels := len(f.Samples)
	n := f.NumSamples()
	if cap(dst) < n*channels {
		dst = make([]float32, n*channels)
	}
	dst = dst[:n*channels]

	for c, plane := range f.Samples {
		for i, v := range plane {
			dst[i*channels+c] = v
		}
	}

	return dst
}

// Deinterleave fills the frame from interleaved samples. The frame is
// resized to len(src)/channels samples.
func (f *Frame) Deinterleave(src []float32) error {
	channels := f.Format.Channels
	if channels < 1 || len(src)%channels != 0 {
		return ErrInvalidDstSize
	}

	n := len(src) / channels
	f.Resize(n)
	for i := range n {
		for c := range channels {
			f.Samples[c][i] = src[i*channels+c]
		}
	}

	return nil
}

// Packet is one compressed (or container-native) unit of a stream.
type Packet struct {
	Data []byte
	// PTS is the position of the packet's first sample, in samples at the
	// stream's rate.
	PTS int64
	// Samples is the per-channel duration of the packet, when known.
	Samples int
}

// StreamInfo describes one elementary stream of a container.
type StreamInfo struct {
	Index int
	// Codec identifies the payload of the packets the demuxer returns.
	Codec string
	// SourceCodec names the codec stored in the file when the demuxer
	// decodes while reading and hands out PCM units.
	SourceCodec string
	Format      Format
	// Delay is the number of leading decoded samples to discard.
	Delay int
	// Duration is the stream length in samples, or 0 when unknown.
	Duration int64
	BitRate  int
}

// Status is the control signal returned next to a stage result. It never
// travels in the error channel.
type Status int

const (
	// StatusOK means a value was returned.
	StatusOK Status = iota
	// StatusNeedMoreInput means the codec needs another input before it
	// can return a value.
	StatusNeedMoreInput
	// StatusEndOfStream means the codec is fully drained.
	StatusEndOfStream
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNeedMoreInput:
		return "need more input"
	case StatusEndOfStream:
		return "end of stream"
	}

	return "unknown"
}

// Demuxer splits a container into packets. It must expose exactly one
// stream for the pipeline to accept it.
type Demuxer interface {
	Streams() []StreamInfo
	// ReadPacket returns the next packet, or io.EOF once input is exhausted.
	ReadPacket() (*Packet, error)
	Close() error
}

// Decoder turns packets into frames.
type Decoder interface {
	// Format of the frames the decoder produces.
	Format() Format
	// Send queues a packet. A nil packet starts draining; sending nil
	// again is a no-op.
	Send(p *Packet) error
	Receive() (*Frame, Status, error)
	Close() error
}

// Encoder turns fixed-size frames into packets.
type Encoder interface {
	// Format of the frames the encoder accepts.
	Format() Format
	// FrameSize is the number of samples per channel every frame except
	// the last must carry.
	FrameSize() int
	// Send queues a frame. The frame is only valid for the duration of the
	// call. A nil frame starts flushing; sending nil again is a no-op.
	Send(f *Frame) error
	Receive() (*Packet, Status, error)
	Close() error
}

// Muxer packages encoded packets into a container.
type Muxer interface {
	WriteHeader() error
	WritePacket(p *Packet) error
	WriteTrailer() error
}

// DemuxerOpener opens a container for reading.
type DemuxerOpener interface {
	Open(r io.ReadSeeker) (Demuxer, error)
}

// MuxerFactory creates a muxer writing one stream to w.
type MuxerFactory interface {
	// DefaultCodec is the codec used when none is configured.
	DefaultCodec() string
	NewMuxer(w io.WriteSeeker, info StreamInfo) (Muxer, error)
}

// DecoderFactory builds a decoder from a stream's codec parameters.
type DecoderFactory interface {
	NewDecoder(info StreamInfo) (Decoder, error)
}

// EncoderParams are the fixed output parameters an encoder is built with.
type EncoderParams struct {
	Codec      string
	SampleRate int
	Channels   int
	BitRate    int
	// FrameSize is a hint for codecs without a native frame size.
	FrameSize int
}

// EncoderFactory builds an encoder.
type EncoderFactory interface {
	NewEncoder(params EncoderParams) (Encoder, error)
}
