// SPDX-License-Identifier: EPL-2.0

// Package audio provides the types shared by every stage of a transcode.
//
// This package contains:
//   - Frame, Packet and StreamInfo, the units that move between stages
//   - Demuxer, Decoder, Encoder and Muxer, the collaborator interfaces
//   - FIFO, the sample buffer that re-segments decoded frames
//   - Converter, which maps channel layout and sample format
//   - Registry, which resolves containers by extension and codecs by name
//   - Error and Kind, the classification of fatal errors
//
// # Frames
//
// A Frame is planar: one []float32 per channel, all of the same length,
// with values in [-1.0, 1.0]. The Format's SampleFormat records the
// precision the values are carried with; integer formats hold values that
// sit exactly on that format's grid.
//
//	f := audio.NewFrame(audio.Format{SampleRate: 48000, Channels: 2}, 960)
//	left := f.Channel(0)
//
// # Control Signals
//
// Decoders and encoders return a Status next to their result. NeedMoreInput
// and EndOfStream are normal; only a non-nil error is a failure:
//
//	for {
//	    pkt, status, err := enc.Receive()
//	    if err != nil {
//	        return err
//	    }
//	    if status != audio.StatusOK {
//	        break
//	    }
//	    // write pkt
//	}
//
// # Sample Buffer
//
// The FIFO accepts frames of any size and hands out exactly the number of
// samples requested:
//
//	q, _ := audio.NewFIFO(2, 4096)
//	_ = q.Write(decoded)
//	if q.Size() >= 960 {
//	    _ = q.Read(out, 960)
//	}
//
// # Errors
//
// Fatal errors are *Error values classified by Kind. KindOf recovers the
// kind through any amount of wrapping:
//
//	if audio.KindOf(err) == audio.KindConfiguration {
//	    // bad input or unsupported target
//	}
package audio
