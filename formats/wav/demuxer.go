// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/pcm"
)

const (
	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xFFFE
)

// DefaultPacketSamples is the number of samples per channel in each packet
// when Container.PacketSamples is zero.
const DefaultPacketSamples = 1024

// Demuxer reads the data chunk of a WAV file in blocks of whole samples.
// Packets carry raw PCM in the codec named by the stream info.
type Demuxer struct {
	data    io.Reader
	info    audio.StreamInfo
	block   int
	samples int
	next    int64
	eof     bool
}

// codecFor maps the fmt chunk to a PCM codec name.
func codecFor(audioFormat, bits uint16) (string, error) {
	switch audioFormat {
	case formatFloat:
		if bits == 32 {
			return audio.CodecPCMF32LE, nil
		}
	case formatPCM, formatExtensible:
		if c := pcm.CodecFor(int(bits), false); c != "" {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: format %d, %d bits", ErrUnsupportedWavLayout, audioFormat, bits)
}

func openDemuxer(rs io.ReadSeeker, packetSamples int) (*Demuxer, error) {
	const op = "wav: open"

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, audio.NewError(audio.KindIO, op, ErrNotWavFile)
	}

	codec, err := codecFor(dec.WavAudioFormat, dec.BitDepth)
	if err != nil {
		return nil, audio.NewError(audio.KindConfiguration, op, err)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, audio.NewError(audio.KindIO, op, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err))
	}
	if dec.PCMChunk == nil {
		return nil, audio.NewError(audio.KindIO, op, ErrUnsupportedWavChunks)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, audio.NewError(audio.KindConfiguration, op, audio.ErrChannelCount)
	}

	if packetSamples <= 0 {
		packetSamples = DefaultPacketSamples
	}

	block := pcm.BitDepth(codec) / 8 * channels
	size := dec.PCMChunk.Size

	return &Demuxer{
		data:    io.LimitReader(dec.PCMChunk.R, int64(size)),
		block:   block,
		samples: packetSamples,
		info: audio.StreamInfo{
			Codec:    codec,
			Format:   audio.Format{SampleRate: int(dec.SampleRate), Channels: channels},
			Duration: int64(size / block),
		},
	}, nil
}

func (d *Demuxer) Streams() []audio.StreamInfo {
	return []audio.StreamInfo{d.info}
}

// ReadPacket returns up to PacketSamples samples. A trailing partial
// sample block at the end of a truncated file is dropped.
func (d *Demuxer) ReadPacket() (*audio.Packet, error) {
	if d.eof {
		return nil, io.EOF
	}

	buf := make([]byte, d.samples*d.block)
	n, err := io.ReadFull(d.data, buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		d.eof = true
	case err != nil:
		return nil, fmt.Errorf("wav: read data: %w", err)
	}

	n -= n % d.block
	if n == 0 {
		return nil, io.EOF
	}

	p := &audio.Packet{Data: buf[:n], PTS: d.next, Samples: n / d.block}
	d.next += int64(p.Samples)

	return p, nil
}

// Close does not close the underlying reader.
func (d *Demuxer) Close() error {
	d.eof = true
	return nil
}
