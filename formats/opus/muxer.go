// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"
	"io"

	"github.com/ik5/audxcode/audio"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
)

// oggPreSkip is the pre-skip pion's oggwriter stores in every OpusHead.
const oggPreSkip = 3840

// writerOnly hides Close so oggwriter leaves the output open.
type writerOnly struct{ io.Writer }

// Muxer writes Opus packets into Ogg pages, one packet per page.
//
// The header announces oggPreSkip samples to drop. WriteHeader fills that
// span with silence packets and WritePacket shifts timestamps past it.
// Every page except the first carries the 48 kHz position of the end of
// its packet as granule, so the last granule bounds the playable length.
type Muxer struct {
	w     io.Writer
	info  audio.StreamInfo
	ogg   *oggwriter.OggWriter
	scale int64
	seq   uint16
	pages int
}

func newMuxer(w io.Writer, info audio.StreamInfo) (*Muxer, error) {
	const op = "opus: new muxer"

	if info.Codec != audio.CodecOpus {
		return nil, audio.NewError(audio.KindConfiguration, op,
			fmt.Errorf("%w: %q in ogg", audio.ErrUnsupportedCodec, info.Codec))
	}
	if !rateSupported(info.Format.SampleRate) {
		return nil, audio.NewError(audio.KindConfiguration, op,
			fmt.Errorf("%w: %d Hz", ErrUnsupportedRate, info.Format.SampleRate))
	}
	if info.Format.Channels < 1 || info.Format.Channels > 2 {
		return nil, audio.NewError(audio.KindConfiguration, op, audio.ErrChannelCount)
	}

	return &Muxer{
		w:     w,
		info:  info,
		scale: int64(SampleRate / info.Format.SampleRate),
	}, nil
}

func (m *Muxer) WriteHeader() error {
	ogg, err := oggwriter.NewWith(writerOnly{m.w},
		uint32(m.info.Format.SampleRate), uint16(m.info.Format.Channels))
	if err != nil {
		return fmt.Errorf("opus: write header: %w", err)
	}
	m.ogg = ogg

	for i := range oggPreSkip / silenceSamples {
		if err := m.write(silencePacket, int64((i+1)*silenceSamples)); err != nil {
			return err
		}
	}
	return nil
}

// WritePacket stamps the packet's end on the 48 kHz clock after the
// lead-in. A packet without a duration is measured from its TOC byte.
func (m *Muxer) WritePacket(p *audio.Packet) error {
	if m.ogg == nil {
		return fmt.Errorf("opus: packet before header")
	}

	end := (p.PTS + int64(p.Samples)) * m.scale
	if p.Samples <= 0 {
		n, err := PacketSamples(p.Data)
		if err != nil {
			return err
		}
		end = p.PTS*m.scale + int64(n)
	}

	return m.write(p.Data, oggPreSkip+end)
}

// write queues payload on a page with the given granule position. The
// oggwriter gives the first page granule 1 and adds the RTP timestamp
// delta for every later page, so later timestamps are granule - 1.
func (m *Muxer) write(payload []byte, granule int64) error {
	var ts uint32
	if m.pages > 0 {
		ts = uint32(granule - 1)
	}

	pkt := &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			SequenceNumber: m.seq,
			Timestamp:      ts,
		},
		Payload: payload,
	}
	m.seq++
	m.pages++

	if err := m.ogg.WriteRTP(pkt); err != nil {
		return fmt.Errorf("opus: write page: %w", err)
	}
	return nil
}

func (m *Muxer) WriteTrailer() error {
	if m.ogg == nil {
		return nil
	}
	ogg := m.ogg
	m.ogg = nil

	return ogg.Close()
}
