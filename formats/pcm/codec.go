// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/audxcode/audio"
)

// DefaultFrameSize is the encoder frame size used when none is given.
const DefaultFrameSize = 4096

// Codec builds PCM decoders and encoders for every layout in Codecs.
type Codec struct{}

func (Codec) NewDecoder(info audio.StreamInfo) (audio.Decoder, error) {
	l, ok := layouts[info.Codec]
	if !ok {
		return nil, audio.NewError(audio.KindConfiguration, "pcm: new decoder",
			fmt.Errorf("%w: %q", audio.ErrUnsupportedCodec, info.Codec))
	}
	if info.Format.Channels < 1 {
		return nil, audio.NewError(audio.KindConfiguration, "pcm: new decoder", audio.ErrChannelCount)
	}

	format := info.Format
	format.SampleFormat = l.format

	return &Decoder{
		layout: l,
		format: format,
		frame:  audio.NewFrame(format, 0),
	}, nil
}

func (Codec) NewEncoder(params audio.EncoderParams) (audio.Encoder, error) {
	l, ok := layouts[params.Codec]
	if !ok {
		return nil, audio.NewError(audio.KindConfiguration, "pcm: new encoder",
			fmt.Errorf("%w: %q", audio.ErrUnsupportedCodec, params.Codec))
	}
	if params.Channels < 1 {
		return nil, audio.NewError(audio.KindConfiguration, "pcm: new encoder", audio.ErrChannelCount)
	}

	frameSize := params.FrameSize
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}

	return &Encoder{
		layout: l,
		format: audio.Format{
			SampleRate:   params.SampleRate,
			Channels:     params.Channels,
			SampleFormat: l.format,
		},
		frameSize: frameSize,
	}, nil
}
