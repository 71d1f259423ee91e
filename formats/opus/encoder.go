// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/utils"
)

// maxPacketBytes bounds one encoded packet (RFC 6716 recommends 1275 per frame).
const maxPacketBytes = 4000

// packetEncoder is the part of opus.Encoder the Encoder uses.
type packetEncoder interface {
	Encode(pcm []int16, data []byte) (int, error)
}

func rateSupported(rate int) bool {
	switch rate {
	case 8000, 12000, 16000, 24000, 48000:
		return true
	}
	return false
}

// FrameSize is the 20 ms frame length at rate.
func FrameSize(rate int) int { return rate / 50 }

// Lookahead is the algorithmic delay of the libopus encoder (6.5 ms) at rate.
func Lookahead(rate int) int { return rate * 13 / 2000 }

// Encoder encodes 20 ms frames. A short final frame is padded with
// silence. Flushing emits one more silent frame carrying the lookahead.
type Encoder struct {
	enc       packetEncoder
	format    audio.Format
	frameSize int
	pcm       []int16
	samples   []float32
	buf       []byte

	queue    []*audio.Packet
	next     int64
	flushing bool
}

func newEncoder(enc packetEncoder, rate, channels int) *Encoder {
	size := FrameSize(rate)

	return &Encoder{
		enc:       enc,
		format:    audio.Format{SampleRate: rate, Channels: channels, SampleFormat: audio.SampleS16},
		frameSize: size,
		pcm:       make([]int16, size*channels),
		samples:   make([]float32, size*channels),
		buf:       make([]byte, maxPacketBytes),
	}
}

func (e *Encoder) Format() audio.Format { return e.format }
func (e *Encoder) FrameSize() int       { return e.frameSize }

func (e *Encoder) Send(f *audio.Frame) error {
	if f == nil {
		if e.flushing {
			return nil
		}
		e.flushing = true

		clear(e.pcm)
		return e.encode(e.next, Lookahead(e.format.SampleRate))
	}
	if e.flushing {
		return fmt.Errorf("opus: frame after flush")
	}

	n := f.NumSamples()
	if n > e.frameSize {
		return fmt.Errorf("%w: %d samples, frame size %d", ErrFrameTooLarge, n, e.frameSize)
	}
	channels := e.format.Channels
	if f.Channels() != channels {
		return fmt.Errorf("%w: got %d channels, want %d", audio.ErrLayoutMismatch, f.Channels(), channels)
	}

	e.samples = f.Interleave(e.samples)
	for i, v := range e.samples {
		e.pcm[i] = utils.Float32ToInt16(v)
	}
	clear(e.pcm[n*channels:])

	e.next = f.PTS + int64(n)
	return e.encode(f.PTS, n)
}

func (e *Encoder) encode(pts int64, samples int) error {
	n, err := e.enc.Encode(e.pcm, e.buf)
	if err != nil {
		return fmt.Errorf("opus: encode: %w", err)
	}

	data := make([]byte, n)
	copy(data, e.buf[:n])
	e.queue = append(e.queue, &audio.Packet{Data: data, PTS: pts, Samples: samples})

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
