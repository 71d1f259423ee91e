// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audxcode/audio"
	"github.com/pion/webrtc/v4/pkg/media/oggreader"
)

var commentSignature = []byte("OpusTags")

// Demuxer reads Opus packets from an Ogg stream. Each page is taken to
// carry exactly one packet, which is how pion's oggwriter lays them out.
//
// The stream's Duration is the last granule position minus the pre-skip:
// the number of samples a decoder should output.
type Demuxer struct {
	r    *oggreader.OggReader
	info audio.StreamInfo
	next int64
	eof  bool
}

// openDemuxer reads the stream once to find the last granule position,
// then rewinds to hand out packets.
func openDemuxer(rs io.ReadSeeker) (*Demuxer, error) {
	const op = "opus: open"

	ogg, header, err := oggreader.NewWith(rs)
	if err != nil {
		return nil, audio.NewError(audio.KindIO, op, fmt.Errorf("%w: %w", ErrNotOpusFile, err))
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, audio.NewError(audio.KindConfiguration, op,
			fmt.Errorf("%w: %d", audio.ErrChannelCount, header.Channels))
	}

	last, err := lastGranule(ogg)
	if err != nil {
		return nil, audio.NewError(audio.KindIO, op, err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, audio.NewError(audio.KindIO, op, err)
	}
	if ogg, _, err = oggreader.NewWith(rs); err != nil {
		return nil, audio.NewError(audio.KindIO, op, err)
	}

	preSkip := int(header.PreSkip)
	var duration int64
	if last > uint64(preSkip) {
		duration = int64(last) - int64(preSkip)
	}

	return &Demuxer{
		r: ogg,
		info: audio.StreamInfo{
			Codec:    audio.CodecOpus,
			Format:   audio.Format{SampleRate: SampleRate, Channels: int(header.Channels)},
			Delay:    preSkip,
			Duration: duration,
		},
	}, nil
}

// noGranule marks a page on which no packet ends.
const noGranule = ^uint64(0)

// lastGranule returns the granule position of the last audio page, or 0
// when the stream has none.
func lastGranule(r *oggreader.OggReader) (uint64, error) {
	var last uint64
	for {
		payload, page, err := r.ParseNextPage()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return last, nil
		}
		if err != nil {
			return 0, fmt.Errorf("opus: scan pages: %w", err)
		}
		if len(payload) == 0 || bytes.HasPrefix(payload, commentSignature) {
			continue
		}
		if page.GranulePosition != noGranule {
			last = page.GranulePosition
		}
	}
}

func (d *Demuxer) Streams() []audio.StreamInfo {
	return []audio.StreamInfo{d.info}
}

func (d *Demuxer) ReadPacket() (*audio.Packet, error) {
	for !d.eof {
		payload, _, err := d.r.ParseNextPage()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			d.eof = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opus: read page: %w", err)
		}
		if len(payload) == 0 || bytes.HasPrefix(payload, commentSignature) {
			continue
		}

		n, err := PacketSamples(payload)
		if err != nil {
			return nil, err
		}

		p := &audio.Packet{Data: payload, PTS: d.next, Samples: n}
		d.next += int64(n)

		return p, nil
	}

	return nil, io.EOF
}

func (d *Demuxer) Close() error {
	d.eof = true
	return nil
}
