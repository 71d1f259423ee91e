// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"io"

	"github.com/ik5/audxcode/audio"
)

// Container opens MP3 files. NewMuxer always fails with audio.ErrNoEncoder.
type Container struct {
	PacketSamples int
}

func (c Container) Open(rs io.ReadSeeker) (audio.Demuxer, error) {
	return openDemuxer(rs, c.PacketSamples)
}

func (Container) DefaultCodec() string { return audio.CodecMP3 }

func (Container) NewMuxer(io.WriteSeeker, audio.StreamInfo) (audio.Muxer, error) {
	return nil, audio.NewError(audio.KindConfiguration, "mp3: new muxer", audio.ErrNoEncoder)
}
