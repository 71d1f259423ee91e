// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audxcode/audio"
	"github.com/jfreymuth/oggvorbis"
)

// DefaultPacketSamples is the number of samples per channel in each packet
// when Container.PacketSamples is zero.
const DefaultPacketSamples = 1024

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

// Demuxer decodes Ogg Vorbis while reading. Its packets carry pcm_f32le.
type Demuxer struct {
	dec      oggReader
	info     audio.StreamInfo
	channels int
	frameBuf []float32
	next     int64
	eof      bool
}

func openDemuxer(r io.Reader, packetSamples int) (*Demuxer, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, audio.NewError(audio.KindIO, "vorbis: open", fmt.Errorf("%w: %w", ErrNotVorbisFile, err))
	}
	if dec.Channels() < 1 {
		return nil, audio.NewError(audio.KindConfiguration, "vorbis: open", audio.ErrChannelCount)
	}

	return newDemuxer(dec, packetSamples), nil
}

func newDemuxer(dec oggReader, packetSamples int) *Demuxer {
	if packetSamples <= 0 {
		packetSamples = DefaultPacketSamples
	}
	channels := dec.Channels()

	return &Demuxer{
		dec:      dec,
		channels: channels,
		frameBuf: make([]float32, packetSamples*channels),
		info: audio.StreamInfo{
			Codec:       audio.CodecPCMF32LE,
			SourceCodec: audio.CodecVorbis,
			Format:      audio.Format{SampleRate: dec.SampleRate(), Channels: channels},
			Duration:    max(dec.Length(), 0),
		},
	}
}

func (d *Demuxer) Streams() []audio.StreamInfo {
	return []audio.StreamInfo{d.info}
}

// ReadPacket fills a whole packet unless the stream ends first.
func (d *Demuxer) ReadPacket() (*audio.Packet, error) {
	if d.eof {
		return nil, io.EOF
	}

	n := 0
	for n < len(d.frameBuf) {
		got, err := d.dec.Read(d.frameBuf[n:])
		n += got
		if errors.Is(err, io.EOF) {
			d.eof = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("vorbis: decode: %w", err)
		}
		if got == 0 {
			break
		}
	}

	n -= n % d.channels
	if n == 0 {
		d.eof = true
		return nil, io.EOF
	}

	data := make([]byte, n*4)
	for i, v := range d.frameBuf[:n] {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}

	p := &audio.Packet{Data: data, PTS: d.next, Samples: n / d.channels}
	d.next += int64(p.Samples)

	return p, nil
}

func (d *Demuxer) Close() error {
	d.eof = true
	return nil
}
