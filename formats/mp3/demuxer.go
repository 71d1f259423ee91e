// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audxcode/audio"
)

const (
	// FrameSamples is the per-channel length of an MPEG-1 Layer III frame.
	FrameSamples = 1152

	// go-mp3 always produces interleaved stereo s16le.
	channels  = 2
	blockSize = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

// Demuxer decodes MP3 while reading. Its packets carry pcm_s16le.
type Demuxer struct {
	dec     mp3Reader
	info    audio.StreamInfo
	samples int
	next    int64
	eof     bool
}

func openDemuxer(r io.Reader, packetSamples int) (*Demuxer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, audio.NewError(audio.KindIO, "mp3: open", fmt.Errorf("%w: %w", ErrNotMP3File, err))
	}

	return newDemuxer(dec, packetSamples), nil
}

func newDemuxer(dec mp3Reader, packetSamples int) *Demuxer {
	if packetSamples <= 0 {
		packetSamples = FrameSamples
	}

	var duration int64
	if l := dec.Length(); l > 0 {
		duration = l / blockSize
	}

	return &Demuxer{
		dec:     dec,
		samples: packetSamples,
		info: audio.StreamInfo{
			Codec:       audio.CodecPCMS16LE,
			SourceCodec: audio.CodecMP3,
			Format:      audio.Format{SampleRate: dec.SampleRate(), Channels: channels},
			Duration:    duration,
		},
	}
}

func (d *Demuxer) Streams() []audio.StreamInfo {
	return []audio.StreamInfo{d.info}
}

func (d *Demuxer) ReadPacket() (*audio.Packet, error) {
	if d.eof {
		return nil, io.EOF
	}

	buf := make([]byte, d.samples*blockSize)
	n, err := io.ReadFull(d.dec, buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		d.eof = true
	case err != nil:
		return nil, fmt.Errorf("mp3: decode: %w", err)
	}

	n -= n % blockSize
	if n == 0 {
		return nil, io.EOF
	}

	p := &audio.Packet{Data: buf[:n], PTS: d.next, Samples: n / blockSize}
	d.next += int64(p.Samples)

	return p, nil
}

func (d *Demuxer) Close() error {
	d.eof = true
	return nil
}
