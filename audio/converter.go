// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audxcode/utils"
)

// Converter maps frames from one channel layout and sample format to
// another at the same sample rate. Every call returns exactly as many
// samples as it was given.
type Converter struct {
	in  Format
	out Format
	dst *Frame
}

// NewConverter checks that in and out can be converted without a rate
// change.
func NewConverter(in, out Format) (*Converter, error) {
	if in.SampleRate != out.SampleRate {
		return nil, NewError(KindConfiguration, "converter: new",
			fmt.Errorf("%w: %d Hz in, %d Hz out", ErrRateMismatch, in.SampleRate, out.SampleRate))
	}
	if in.Channels < 1 || out.Channels < 1 {
		return nil, NewError(KindConfiguration, "converter: new", ErrChannelCount)
	}

	return &Converter{
		in:  in,
		out: out,
		dst: NewFrame(out, 0),
	}, nil
}

func (c *Converter) InputFormat() Format  { return c.in }
func (c *Converter) OutputFormat() Format { return c.out }

// Convert returns f in the output format. The returned frame is owned by
// the converter and is overwritten by the next call.
func (c *Converter) Convert(f *Frame) (*Frame, error) {
	if f.Channels() != c.in.Channels {
		return nil, NewError(KindCodec, "converter: convert",
			fmt.Errorf("%w: got %d channels, want %d", ErrLayoutMismatch, f.Channels(), c.in.Channels))
	}

	n := f.NumSamples()
	c.dst.Resize(n)
	c.dst.PTS = f.PTS

	inCh := c.in.Channels
	outCh := c.out.Channels

	switch {
	case inCh == outCh:
		for ch := range outCh {
			copy(c.dst.Samples[ch], f.Samples[ch])
		}
	case outCh == 1 && inCh == 2:
		l, r := f.Samples[0], f.Samples[1]
		mono := c.dst.Samples[0]
		for i := range n {
			mono[i] = (l[i] + r[i]) * 0.5
		}
	case inCh > outCh:
		// Output channel j averages every input channel c with c%outCh == j.
		for j := range outCh {
			dst := c.dst.Samples[j]
			clear(dst)
			count := 0
			for ch := j; ch < inCh; ch += outCh {
				for i, v := range f.Samples[ch] {
					dst[i] += v
				}
				count++
			}
			inv := float32(1) / float32(count)
			for i := range dst {
				dst[i] *= inv
			}
		}
	default:
		for j := range outCh {
			copy(c.dst.Samples[j], f.Samples[j%inCh])
		}
	}

	if !c.out.SampleFormat.IsFloat() {
		bits := c.out.SampleFormat.BitDepth()
		for _, plane := range c.dst.Samples {
			for i, v := range plane {
				plane[i] = utils.Quantize(v, bits)
			}
		}
	}

	return c.dst, nil
}
