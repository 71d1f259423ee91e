// SPDX-License-Identifier: EPL-2.0

// Package pipeline drives a single-stream transcode.
//
// A Transcoder pulls packets from an audio.Demuxer, decodes them, converts
// each frame to the encoder's channel layout and sample format, and queues
// the result in an audio.FIFO. Whenever the queue holds a full encoder
// frame it is encoded and the packets are handed to the audio.Muxer.
//
// The run is a small state machine:
//
//	filling  -> draining -> filling ...   while input lasts
//	filling  -> finished                  once the decoder is drained
//	finished -> flushing                  after the partial last frame
//	flushing -> done                      when the encoder stops producing
//
// Timestamps are assigned from a counter owned by the Transcoder: frame k
// is stamped with the total sample count of frames 0..k-1.
//
//	t, err := pipeline.New(demux, dec, enc, mux, pipeline.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	stats, err := t.Run(ctx)
package pipeline
