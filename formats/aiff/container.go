// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"

	"github.com/ik5/audxcode/audio"
)

// Container opens and creates AIFF files.
type Container struct {
	PacketSamples int
}

func (c Container) Open(rs io.ReadSeeker) (audio.Demuxer, error) {
	return openDemuxer(rs, c.PacketSamples)
}

func (Container) DefaultCodec() string { return audio.CodecPCMS16BE }

func (Container) NewMuxer(w io.WriteSeeker, info audio.StreamInfo) (audio.Muxer, error) {
	return newMuxer(w, info)
}
