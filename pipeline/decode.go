// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/ik5/audxcode/audio"
)

// decodeStage pulls packets from the demuxer and frames from the decoder.
type decodeStage struct {
	demux audio.Demuxer
	dec   audio.Decoder
	// draining is set once the demuxer reported end of input and the
	// decoder was told to drain. The decoder is never told twice.
	draining bool
	stats    *Stats
	obs      observer
}

// next returns one decoded frame, StatusNeedMoreInput when the decoder
// consumed a packet without producing a frame, or StatusEndOfStream once
// the decoder is fully drained.
func (s *decodeStage) next(ctx context.Context) (*audio.Frame, audio.Status, error) {
	// Frames already held by the decoder come out before any new input.
	frame, status, err := s.receive(ctx)
	if err != nil || status != audio.StatusNeedMoreInput {
		return frame, status, err
	}

	if s.draining {
		return nil, 0, audio.NewError(audio.KindCodec, "decode", audio.ErrDecoderStalled)
	}

	pkt, err := s.demux.ReadPacket()
	switch {
	case errors.Is(err, io.EOF):
		s.draining = true
		if err := s.dec.Send(nil); err != nil {
			return nil, 0, audio.NewError(audio.KindCodec, "drain decoder", err)
		}
	case err != nil:
		return nil, 0, audio.NewError(audio.KindIO, "read packet", err)
	default:
		s.stats.PacketsRead++
		s.obs.packetRead(ctx)
		if err := s.dec.Send(pkt); err != nil {
			return nil, 0, audio.NewError(audio.KindCodec, "send packet to decoder", err)
		}
	}

	return s.receive(ctx)
}

func (s *decodeStage) receive(ctx context.Context) (*audio.Frame, audio.Status, error) {
	frame, status, err := s.dec.Receive()
	if err != nil {
		return nil, 0, audio.NewError(audio.KindCodec, "decode frame", err)
	}

	if status == audio.StatusOK {
		s.stats.FramesDecoded++
		s.stats.SamplesDecoded += int64(frame.NumSamples())
		s.obs.frameDecoded(ctx)
	}

	return frame, status, nil
}
