// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/audxcode/audio"
)

// Encoder serializes planar frames into interleaved PCM packets, one
// packet per frame.
type Encoder struct {
	layout    layout
	format    audio.Format
	frameSize int
	queue     []*audio.Packet
	flushing  bool
}

func (e *Encoder) Format() audio.Format { return e.format }
func (e *Encoder) FrameSize() int       { return e.frameSize }

func (e *Encoder) Send(f *audio.Frame) error {
	if f == nil {
		e.flushing = true
		return nil
	}
	if e.flushing {
		return fmt.Errorf("pcm: frame after flush")
	}

	n := f.NumSamples()
	if n > e.frameSize {
		return fmt.Errorf("%w: %d samples, frame size %d", ErrFrameTooLarge, n, e.frameSize)
	}
	channels := e.format.Channels
	if f.Channels() != channels {
		return fmt.Errorf("%w: got %d channels, want %d", audio.ErrLayoutMismatch, f.Channels(), channels)
	}

	size := e.layout.size
	data := make([]byte, n*channels*size)
	for i := range n {
		base := i * channels * size
		for c := range channels {
			off := base + c*size
			e.layout.write(data[off:off+size], f.Samples[c][i])
		}
	}

	e.queue = append(e.queue, &audio.Packet{Data: data, PTS: f.PTS, Samples: n})
	return nil
}

func (e *Encoder) Receive() (*audio.Packet, audio.Status, error) {
	if len(e.queue) > 0 {
		p := e.queue[0]
		e.queue = e.queue[1:]
		return p, audio.StatusOK, nil
	}
	if e.flushing {
		return nil, audio.StatusEndOfStream, nil
	}
	return nil, audio.StatusNeedMoreInput, nil
}

func (e *Encoder) Close() error { return nil }
