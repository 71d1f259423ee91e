// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"io"

	"github.com/ik5/audxcode/audio"
)

// Container opens Ogg Vorbis files.
type Container struct {
	PacketSamples int
}

func (c Container) Open(rs io.ReadSeeker) (audio.Demuxer, error) {
	return openDemuxer(rs, c.PacketSamples)
}
