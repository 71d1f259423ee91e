// SPDX-License-Identifier: EPL-2.0

// Package pcm provides decoders and encoders for uncompressed PCM.
//
// Supported layouts are unsigned 8-bit, signed 8/16/24/32-bit in either
// byte order, and 32-bit little-endian float:
//
//	dec, _ := pcm.Codec{}.NewDecoder(audio.StreamInfo{
//	    Codec:  audio.CodecPCMS16LE,
//	    Format: audio.Format{SampleRate: 44100, Channels: 2},
//	})
//
// The encoder emits one packet per frame and accepts frames of at most
// FrameSize samples. Neither side has latency, so flushing the encoder
// returns end of stream right away.
package pcm
