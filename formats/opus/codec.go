// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"
	"io"

	"github.com/ik5/audxcode/audio"
	libopus "gopkg.in/hraban/opus.v2"
)

// DefaultBitRate is used when EncoderParams.BitRate is zero.
const DefaultBitRate = 96000

// Codec builds libopus decoders and encoders.
type Codec struct{}

func (Codec) NewDecoder(info audio.StreamInfo) (audio.Decoder, error) {
	const op = "opus: new decoder"

	channels := info.Format.Channels
	if channels < 1 || channels > 2 {
		return nil, audio.NewError(audio.KindConfiguration, op, audio.ErrChannelCount)
	}

	dec, err := libopus.NewDecoder(SampleRate, channels)
	if err != nil {
		return nil, audio.NewError(audio.KindCodec, op, err)
	}

	return newDecoder(dec, channels, info.Delay, info.Duration), nil
}

func (Codec) NewEncoder(params audio.EncoderParams) (audio.Encoder, error) {
	const op = "opus: new encoder"

	if !rateSupported(params.SampleRate) {
		return nil, audio.NewError(audio.KindConfiguration, op,
			fmt.Errorf("%w: %d Hz", ErrUnsupportedRate, params.SampleRate))
	}
	if params.Channels < 1 || params.Channels > 2 {
		return nil, audio.NewError(audio.KindConfiguration, op, audio.ErrChannelCount)
	}

	enc, err := libopus.NewEncoder(params.SampleRate, params.Channels, libopus.AppAudio)
	if err != nil {
		return nil, audio.NewError(audio.KindCodec, op, err)
	}

	bitRate := params.BitRate
	if bitRate <= 0 {
		bitRate = DefaultBitRate
	}
	if err := enc.SetBitrate(bitRate); err != nil {
		return nil, audio.NewError(audio.KindConfiguration, op, fmt.Errorf("bit rate %d: %w", bitRate, err))
	}

	return newEncoder(enc, params.SampleRate, params.Channels), nil
}

// Container reads and writes Ogg Opus files.
type Container struct{}

// Open needs to seek: the stream is scanned once for its final granule
// position before packets are read.
func (Container) Open(rs io.ReadSeeker) (audio.Demuxer, error) {
	return openDemuxer(rs)
}

func (Container) DefaultCodec() string { return audio.CodecOpus }

func (Container) NewMuxer(w io.WriteSeeker, info audio.StreamInfo) (audio.Muxer, error) {
	return newMuxer(w, info)
}
