// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"

	"github.com/ik5/audxcode/audio"
)

// Demuxer hands out one packet per entry of Sizes. Each packet's Samples
// field carries the size; the payload is empty.
type Demuxer struct {
	Info  []audio.StreamInfo
	Sizes []int
	// Err is returned once the packets run out, instead of io.EOF.
	Err error

	Reads    int
	EOFReads int
	Closed   bool
}

// NewDemuxer returns a single-stream demuxer.
func NewDemuxer(format audio.Format, sizes ...int) *Demuxer {
	return &Demuxer{
		Info:  []audio.StreamInfo{{Codec: "fake", Format: format}},
		Sizes: sizes,
	}
}

func (d *Demuxer) Streams() []audio.StreamInfo { return d.Info }

func (d *Demuxer) ReadPacket() (*audio.Packet, error) {
	if d.Reads >= len(d.Sizes) {
		d.EOFReads++
		if d.Err != nil {
			return nil, d.Err
		}
		return nil, io.EOF
	}

	n := d.Sizes[d.Reads]
	d.Reads++

	return &audio.Packet{Samples: n}, nil
}

func (d *Demuxer) Close() error {
	d.Closed = true
	return nil
}

// Decoder turns each packet into a frame of Packet.Samples samples drawn
// from Wave. It holds back Latency frames until draining.
type Decoder struct {
	Fmt     audio.Format
	Latency int
	Wave    Waveform
	// FailAt makes the n-th Send (1-based) fail.
	FailAt int

	Sends      int
	DrainSends int
	Closed     bool

	queue    []*audio.Frame
	next     int64
	draining bool
}

func NewDecoder(format audio.Format) *Decoder {
	return &Decoder{Fmt: format, Wave: Ramp}
}

func (d *Decoder) Format() audio.Format { return d.Fmt }

func (d *Decoder) Send(p *audio.Packet) error {
	if p == nil {
		d.DrainSends++
		d.draining = true
		return nil
	}
	if d.draining {
		return errors.New("audiotest: packet sent after drain")
	}

	d.Sends++
	if d.FailAt > 0 && d.Sends == d.FailAt {
		return errors.New("audiotest: corrupt packet")
	}

	d.queue = append(d.queue, NewFrame(d.Fmt, p.Samples, d.next, d.Wave))
	d.next += int64(p.Samples)

	return nil
}

func (d *Decoder) Receive() (*audio.Frame, audio.Status, error) {
	if len(d.queue) > d.Latency || (d.draining && len(d.queue) > 0) {
		f := d.queue[0]
		d.queue = d.queue[1:]
		return f, audio.StatusOK, nil
	}
	if d.draining {
		return nil, audio.StatusEndOfStream, nil
	}

	return nil, audio.StatusNeedMoreInput, nil
}

func (d *Decoder) Close() error {
	d.Closed = true
	return nil
}

// EncodedFrame records one frame an Encoder was given.
type EncodedFrame struct {
	PTS     int64
	Samples int
}

// Encoder records every frame it receives and emits one packet per frame,
// holding back Latency packets until flushing.
type Encoder struct {
	Fmt     audio.Format
	Size    int
	Latency int
	// FailAt makes the n-th frame Send (1-based) fail.
	FailAt int

	Frames []EncodedFrame
	// Received holds channel 0 of every frame, in order.
	Received   []float32
	FlushSends int
	Receives   int
	Closed     bool

	queue    []*audio.Packet
	flushing bool
}

func NewEncoder(format audio.Format, frameSize int) *Encoder {
	return &Encoder{Fmt: format, Size: frameSize}
}

func (e *Encoder) Format() audio.Format { return e.Fmt }
func (e *Encoder) FrameSize() int       { return e.Size }

func (e *Encoder) Send(f *audio.Frame) error {
	if f == nil {
		e.FlushSends++
		e.flushing = true
		return nil
	}
	if e.flushing {
		return errors.New("audiotest: frame sent after flush")
	}
	if e.FailAt > 0 && len(e.Frames)+1 == e.FailAt {
		return errors.New("audiotest: encoder failure")
	}

	n := f.NumSamples()
	e.Frames = append(e.Frames, EncodedFrame{PTS: f.PTS, Samples: n})
	e.Received = append(e.Received, f.Samples[0]...)
	e.queue = append(e.queue, &audio.Packet{Data: []byte{byte(len(e.Frames))}, PTS: f.PTS, Samples: n})

	return nil
}

func (e *Encoder) Receive() (*audio.Packet, audio.Status, error) {
	e.Receives++
	if len(e.queue) > e.Latency || (e.flushing && len(e.queue) > 0) {
		p := e.queue[0]
		e.queue = e.queue[1:]
		return p, audio.StatusOK, nil
	}
	if e.flushing {
		return nil, audio.StatusEndOfStream, nil
	}

	return nil, audio.StatusNeedMoreInput, nil
}

func (e *Encoder) Close() error {
	e.Closed = true
	return nil
}

// Muxer records what was written to it.
type Muxer struct {
	// WriteErr is returned by WritePacket.
	WriteErr error

	Header  bool
	Trailer bool
	Packets []*audio.Packet
}

func (m *Muxer) WriteHeader() error {
	m.Header = true
	return nil
}

func (m *Muxer) WritePacket(p *audio.Packet) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Packets = append(m.Packets, p)
	return nil
}

func (m *Muxer) WriteTrailer() error {
	m.Trailer = true
	return nil
}
