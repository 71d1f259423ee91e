// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/pcm"
)

// Muxer stores little-endian PCM packets through go-audio's WAV encoder,
// which patches the RIFF and data sizes on WriteTrailer.
type Muxer struct {
	w      io.WriteSeeker
	info   audio.StreamInfo
	bits   int
	enc    *wav.Encoder
	buf    *goaudio.IntBuffer
	closed bool
}

func outputCodecSupported(codec string) bool {
	switch codec {
	case audio.CodecPCMU8, audio.CodecPCMS16LE, audio.CodecPCMS24LE, audio.CodecPCMS32LE:
		return true
	}
	return false
}

func newMuxer(w io.WriteSeeker, info audio.StreamInfo) (*Muxer, error) {
	if !outputCodecSupported(info.Codec) {
		return nil, audio.NewError(audio.KindConfiguration, "wav: new muxer",
			fmt.Errorf("%w: %q", ErrUnsupportedOutputCodec, info.Codec))
	}
	if info.Format.Channels < 1 {
		return nil, audio.NewError(audio.KindConfiguration, "wav: new muxer", audio.ErrChannelCount)
	}

	return &Muxer{w: w, info: info, bits: pcm.BitDepth(info.Codec)}, nil
}

func (m *Muxer) WriteHeader() error {
	m.enc = wav.NewEncoder(m.w, m.info.Format.SampleRate, m.bits, m.info.Format.Channels, formatPCM)
	m.buf = &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: m.info.Format.Channels,
			SampleRate:  m.info.Format.SampleRate,
		},
		SourceBitDepth: m.bits,
	}

	return nil
}

func (m *Muxer) WritePacket(p *audio.Packet) error {
	if m.enc == nil {
		return fmt.Errorf("wav: packet before header")
	}

	size := m.bits / 8
	if len(p.Data)%(size*m.info.Format.Channels) != 0 {
		return fmt.Errorf("%w: %d bytes", audio.ErrPartialSample, len(p.Data))
	}

	n := len(p.Data) / size
	if cap(m.buf.Data) < n {
		m.buf.Data = make([]int, n)
	}
	m.buf.Data = m.buf.Data[:n]

	for i := range n {
		m.buf.Data[i] = sampleAt(p.Data[i*size:], size)
	}

	if err := m.enc.Write(m.buf); err != nil {
		return fmt.Errorf("wav: write: %w", err)
	}
	return nil
}

// WriteTrailer finalizes the chunk sizes. It does not close the writer.
func (m *Muxer) WriteTrailer() error {
	if m.enc == nil || m.closed {
		return nil
	}
	m.closed = true

	if err := m.enc.Close(); err != nil {
		return fmt.Errorf("wav: finalize: %w", err)
	}
	return nil
}

// sampleAt decodes one little-endian sample into the integer domain the
// go-audio encoder expects: 0..255 for 8-bit, signed otherwise.
func sampleAt(b []byte, size int) int {
	switch size {
	case 1:
		return int(b[0])
	case 2:
		return int(int16(binary.LittleEndian.Uint16(b)))
	case 3:
		u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		return int(int32(u<<8) >> 8)
	default:
		return int(int32(binary.LittleEndian.Uint32(b)))
	}
}
