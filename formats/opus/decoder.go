// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/utils"
)

// maxFrameSamples is the longest Opus packet, 120 ms at 48 kHz.
const maxFrameSamples = 5760

// packetDecoder is the part of opus.Decoder the Decoder uses.
type packetDecoder interface {
	Decode(data []byte, pcm []int16) (int, error)
}

// Decoder decodes Opus packets at 48 kHz. It drops the stream's pre-skip
// and, when the length is known, stops after that many samples.
type Decoder struct {
	dec    packetDecoder
	format audio.Format
	skip   int
	limit  int64
	pcm    []int16
	buf    []float32

	pending  bool
	frame    *audio.Frame
	next     int64
	draining bool
}

// newDecoder wraps dec. limit is the number of samples to output after
// the pre-skip; zero means unbounded.
func newDecoder(dec packetDecoder, channels, preSkip int, limit int64) *Decoder {
	format := audio.Format{SampleRate: SampleRate, Channels: channels, SampleFormat: audio.SampleS16}

	return &Decoder{
		dec:    dec,
		format: format,
		skip:   preSkip,
		limit:  limit,
		pcm:    make([]int16, maxFrameSamples*channels),
		buf:    make([]float32, maxFrameSamples*channels),
		frame:  audio.NewFrame(format, 0),
	}
}

func (d *Decoder) Format() audio.Format { return d.format }

// Send decodes right away; the frame waits for Receive.
func (d *Decoder) Send(p *audio.Packet) error {
	if p == nil {
		d.draining = true
		return nil
	}
	if d.draining {
		return fmt.Errorf("opus: packet after drain")
	}
	if d.pending {
		return audio.ErrPacketPending
	}

	n, err := d.dec.Decode(p.Data, d.pcm)
	if err != nil {
		return fmt.Errorf("opus: decode: %w", err)
	}

	drop := min(d.skip, n)
	d.skip -= drop

	keep := n - drop
	if d.limit > 0 {
		keep = int(min(int64(keep), max(d.limit-d.next, 0)))
	}
	if keep == 0 {
		return nil
	}

	channels := d.format.Channels
	src := d.buf[:keep*channels]
	for i, v := range d.pcm[drop*channels : (drop+keep)*channels] {
		src[i] = utils.Int16ToFloat32(v)
	}
	if err := d.frame.Deinterleave(src); err != nil {
		return err
	}
	d.frame.PTS = d.next
	d.next += int64(keep)
	d.pending = true

	return nil
}

func (d *Decoder) Receive() (*audio.Frame, audio.Status, error) {
	if d.pending {
		d.pending = false
		return d.frame, audio.StatusOK, nil
	}
	if d.draining {
		return nil, audio.StatusEndOfStream, nil
	}
	return nil, audio.StatusNeedMoreInput, nil
}

func (d *Decoder) Close() error { return nil }
