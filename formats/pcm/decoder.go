// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/audxcode/audio"
)

// Decoder turns raw PCM packets into planar frames. It has no latency:
// every packet yields one frame.
type Decoder struct {
	layout  layout
	format  audio.Format
	pending *audio.Packet
	// frame is reused; it is valid until the next Receive.
	frame    *audio.Frame
	next     int64
	draining bool
}

func (d *Decoder) Format() audio.Format { return d.format }

func (d *Decoder) Send(p *audio.Packet) error {
	if p == nil {
		d.draining = true
		return nil
	}
	if d.draining {
		return fmt.Errorf("pcm: packet after drain")
	}
	if d.pending != nil {
		return audio.ErrPacketPending
	}

	block := d.layout.size * d.format.Channels
	if len(p.Data)%block != 0 {
		return fmt.Errorf("%w: %d bytes, block %d", audio.ErrPartialSample, len(p.Data), block)
	}

	d.pending = p
	return nil
}

func (d *Decoder) Receive() (*audio.Frame, audio.Status, error) {
	if d.pending == nil {
		if d.draining {
			return nil, audio.StatusEndOfStream, nil
		}
		return nil, audio.StatusNeedMoreInput, nil
	}

	p := d.pending
	d.pending = nil

	channels := d.format.Channels
	size := d.layout.size
	n := len(p.Data) / (size * channels)

	d.frame.Resize(n)
	d.frame.PTS = d.next
	for i := range n {
		base := i * channels * size
		for c := range channels {
			off := base + c*size
			d.frame.Samples[c][i] = d.layout.read(p.Data[off : off+size])
		}
	}
	d.next += int64(n)

	return d.frame, audio.StatusOK, nil
}

func (d *Decoder) Close() error { return nil }
