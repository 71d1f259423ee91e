// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"

	"github.com/ik5/audxcode/audio"
)

// encodeStage feeds the encoder and forwards its packets to the muxer.
type encodeStage struct {
	enc   audio.Encoder
	mux   audio.Muxer
	stats *Stats
	obs   observer
}

// encode stamps f with *pts, advances *pts by the frame's sample count and
// submits it. A nil f asks the encoder to flush. Every packet the encoder
// has ready afterwards is written; the result reports whether there was
// at least one.
func (s *encodeStage) encode(ctx context.Context, f *audio.Frame, pts *int64) (bool, error) {
	op := "encode frame"
	if f != nil {
		f.PTS = *pts
		*pts += int64(f.NumSamples())
		s.stats.FramesEncoded++
		s.stats.SamplesEncoded += int64(f.NumSamples())
	} else {
		op = "flush encoder"
		s.stats.FlushCalls++
		s.obs.flushCall(ctx)
	}

	if err := s.enc.Send(f); err != nil {
		return false, audio.NewError(audio.KindCodec, op, err)
	}

	produced := false
	for {
		pkt, status, err := s.enc.Receive()
		if err != nil {
			return produced, audio.NewError(audio.KindCodec, "receive packet", err)
		}
		if status != audio.StatusOK {
			return produced, nil
		}

		if err := s.mux.WritePacket(pkt); err != nil {
			return produced, audio.NewError(audio.KindIO, "write packet", err)
		}
		produced = true
		s.stats.PacketsWritten++
		s.obs.packetWritten(ctx)
	}
}
