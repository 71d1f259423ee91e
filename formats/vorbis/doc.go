// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides an Ogg Vorbis demuxer.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// The library decodes while reading, so the demuxer hands out pcm_f32le
// packets and names vorbis as the stream's SourceCodec:
//
//	f, _ := os.Open("audio.ogg")
//	demux, err := vorbis.Container{}.Open(f)
//	if err != nil {
//	    // Handle error
//	}
//	pkt, err := demux.ReadPacket() // interleaved float32 samples
//
// # Channel Layout
//
// Packet payloads are interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// # Limitations
//
// Vorbis encoding is not supported (decoding only).
package vorbis
