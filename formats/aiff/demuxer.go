// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/pcm"
)

// DefaultPacketSamples is the number of samples per channel in each packet
// when Container.PacketSamples is zero.
const DefaultPacketSamples = 1024

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Demuxer reads sample frames through go-audio's AIFF decoder and hands
// them out as big-endian PCM packets.
type Demuxer struct {
	dec    aiffReader
	info   audio.StreamInfo
	size   int
	intBuf *goaudio.IntBuffer
	next   int64
	eof    bool
}

func openDemuxer(rs io.ReadSeeker, packetSamples int) (*Demuxer, error) {
	const op = "aiff: open"

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, audio.NewError(audio.KindIO, op, ErrNotAiffFile)
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, audio.NewError(audio.KindConfiguration, op, ErrUnsupportedAiffLayout)
	}

	return newDemuxer(dec, int(dec.BitDepth), packetSamples)
}

func newDemuxer(dec aiffReader, bits, packetSamples int) (*Demuxer, error) {
	const op = "aiff: open"

	codec := pcm.CodecFor(bits, true)
	if codec == "" {
		return nil, audio.NewError(audio.KindConfiguration, op,
			fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits))
	}

	format := dec.Format()
	if packetSamples <= 0 {
		packetSamples = DefaultPacketSamples
	}

	return &Demuxer{
		dec:  dec,
		size: bits / 8,
		info: audio.StreamInfo{
			Codec:  codec,
			Format: audio.Format{SampleRate: format.SampleRate, Channels: format.NumChannels},
		},
		intBuf: &goaudio.IntBuffer{
			Data:           make([]int, packetSamples*format.NumChannels),
			Format:         format,
			SourceBitDepth: bits,
		},
	}, nil
}

func (d *Demuxer) Streams() []audio.StreamInfo {
	return []audio.StreamInfo{d.info}
}

func (d *Demuxer) ReadPacket() (*audio.Packet, error) {
	if d.eof {
		return nil, io.EOF
	}

	n, err := d.dec.PCMBuffer(d.intBuf)
	switch {
	case errors.Is(err, io.EOF):
		d.eof = true
	case err != nil:
		return nil, fmt.Errorf("aiff: read samples: %w", err)
	}

	channels := d.info.Format.Channels
	n -= n % channels
	if n == 0 {
		d.eof = true
		return nil, io.EOF
	}

	data := make([]byte, n*d.size)
	for i, v := range d.intBuf.Data[:n] {
		putSample(data[i*d.size:], v, d.size)
	}

	p := &audio.Packet{Data: data, PTS: d.next, Samples: n / channels}
	d.next += int64(p.Samples)

	return p, nil
}

func (d *Demuxer) Close() error {
	d.eof = true
	return nil
}

// putSample stores v big-endian in the low size bytes.
func putSample(b []byte, v, size int) {
	u := uint32(int32(v))
	for i := size - 1; i >= 0; i-- {
		b[i] = byte(u)
		u >>= 8
	}
}

// sampleAt reads a signed big-endian sample of size bytes.
func sampleAt(b []byte, size int) int {
	var u uint32
	for i := range size {
		u = u<<8 | uint32(b[i])
	}
	shift := 32 - 8*size
	return int(int32(u<<shift) >> shift)
}
