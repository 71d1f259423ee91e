// SPDX-License-Identifier: EPL-2.0

package audxcode

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/aiff"
	"github.com/ik5/audxcode/formats/mp3"
	"github.com/ik5/audxcode/formats/opus"
	"github.com/ik5/audxcode/formats/pcm"
	"github.com/ik5/audxcode/formats/vorbis"
	"github.com/ik5/audxcode/formats/wav"
	"github.com/ik5/audxcode/internal/config"
)

// NewRegistry returns a registry with every built-in container and codec.
// packetSamples sets the demuxed packet size of the PCM-producing
// containers; zero keeps each container's default.
func NewRegistry(packetSamples int) *audio.Registry {
	r := audio.NewRegistry()

	w := wav.Container{PacketSamples: packetSamples}
	r.RegisterDemuxer("wav", w)
	r.RegisterMuxer("wav", w)

	a := aiff.Container{PacketSamples: packetSamples}
	for _, ext := range []string{"aif", "aiff"} {
		r.RegisterDemuxer(ext, a)
		r.RegisterMuxer(ext, a)
	}

	m := mp3.Container{PacketSamples: packetSamples}
	r.RegisterDemuxer("mp3", m)
	r.RegisterMuxer("mp3", m)

	o := opus.Container{}
	r.RegisterDemuxer("ogg", oggOpener{vorbis: vorbis.Container{PacketSamples: packetSamples}, opus: o})
	r.RegisterMuxer("ogg", o)
	r.RegisterDemuxer("opus", o)
	r.RegisterMuxer("opus", o)

	for _, codec := range pcm.Codecs() {
		r.RegisterDecoder(codec, pcm.Codec{})
		r.RegisterEncoder(codec, pcm.Codec{})
	}
	r.RegisterDecoder(audio.CodecOpus, opus.Codec{})
	r.RegisterEncoder(audio.CodecOpus, opus.Codec{})

	return r
}

// DefaultRegistry builds the registry for the default configuration.
func DefaultRegistry() *audio.Registry {
	return NewRegistry(config.Default().Input.PacketSamples)
}

// oggOpener tries Vorbis first and falls back to Opus.
type oggOpener struct {
	vorbis audio.DemuxerOpener
	opus   audio.DemuxerOpener
}

func (o oggOpener) Open(rs io.ReadSeeker) (audio.Demuxer, error) {
	d, verr := o.vorbis.Open(rs)
	if verr == nil {
		return d, nil
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, audio.NewError(audio.KindIO, "ogg: rewind", err)
	}

	d, oerr := o.opus.Open(rs)
	if oerr == nil {
		return d, nil
	}

	return nil, audio.NewError(audio.KindIO, "ogg: open",
		fmt.Errorf("%w: %w", audio.ErrUnknownFormat, errors.Join(verr, oerr)))
}
