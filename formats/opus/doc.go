// SPDX-License-Identifier: EPL-2.0

// Package opus provides Ogg Opus demuxing and muxing plus an Opus decoder
// and encoder.
//
// Pages are read and written with pion's oggreader and oggwriter. The
// codec side is libopus through gopkg.in/hraban/opus.v2, so building this
// package needs cgo and the libopus headers.
//
// # Decoding
//
// Streams are always decoded at 48 kHz. The first PreSkip samples from the
// OpusHead page are dropped.
//
// # Encoding
//
// The encoder accepts 8, 12, 16, 24 or 48 kHz input with one or two
// channels and encodes 20 ms frames:
//
//	enc, err := opus.Codec{}.NewEncoder(audio.EncoderParams{
//	    Codec:      audio.CodecOpus,
//	    SampleRate: 48000,
//	    Channels:   2,
//	    BitRate:    96000,
//	})
//	enc.FrameSize() // 960
//
// # Limitations
//
//   - Each Ogg page is assumed to carry one packet.
//   - No end-of-stream page flag is written when muxing to a stream.
package opus
