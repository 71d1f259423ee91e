// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/pcm"
)

// Muxer stores big-endian PCM packets through go-audio's AIFF encoder.
type Muxer struct {
	w      io.WriteSeeker
	info   audio.StreamInfo
	size   int
	enc    *aiff.Encoder
	buf    *goaudio.IntBuffer
	closed bool
}

func newMuxer(w io.WriteSeeker, info audio.StreamInfo) (*Muxer, error) {
	switch info.Codec {
	case audio.CodecPCMS8, audio.CodecPCMS16BE, audio.CodecPCMS24BE, audio.CodecPCMS32BE:
	default:
		return nil, audio.NewError(audio.KindConfiguration, "aiff: new muxer",
			fmt.Errorf("%w: %q", ErrUnsupportedOutputCodec, info.Codec))
	}
	if info.Format.Channels < 1 {
		return nil, audio.NewError(audio.KindConfiguration, "aiff: new muxer", audio.ErrChannelCount)
	}

	return &Muxer{w: w, info: info, size: pcm.BitDepth(info.Codec) / 8}, nil
}

func (m *Muxer) WriteHeader() error {
	bits := m.size * 8
	m.enc = aiff.NewEncoder(m.w, m.info.Format.SampleRate, bits, m.info.Format.Channels)
	m.buf = &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: m.info.Format.Channels,
			SampleRate:  m.info.Format.SampleRate,
		},
		SourceBitDepth: bits,
	}

	return nil
}

func (m *Muxer) WritePacket(p *audio.Packet) error {
	if m.enc == nil {
		return fmt.Errorf("aiff: packet before header")
	}
	if len(p.Data)%(m.size*m.info.Format.Channels) != 0 {
		return fmt.Errorf("%w: %d bytes", audio.ErrPartialSample, len(p.Data))
	}

	n := len(p.Data) / m.size
	if cap(m.buf.Data) < n {
		m.buf.Data = make([]int, n)
	}
	m.buf.Data = m.buf.Data[:n]
	for i := range n {
		m.buf.Data[i] = sampleAt(p.Data[i*m.size:], m.size)
	}

	if err := m.enc.Write(m.buf); err != nil {
		return fmt.Errorf("aiff: write: %w", err)
	}
	return nil
}

// WriteTrailer patches the COMM and SSND sizes. It does not close the writer.
func (m *Muxer) WriteTrailer() error {
	if m.enc == nil || m.closed {
		return nil
	}
	m.closed = true

	if err := m.enc.Close(); err != nil {
		return fmt.Errorf("aiff: finalize: %w", err)
	}
	return nil
}
