// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides an MP3 demuxer.
//
// This package uses github.com/hajimehoshi/go-mp3, which decodes while it
// reads. The demuxer therefore hands out pcm_s16le packets and names mp3
// as the stream's SourceCodec:
//
//	f, _ := os.Open("audio.mp3")
//	demux, err := mp3.Container{}.Open(f)
//	if err != nil {
//	    // Handle error
//	}
//	info := demux.Streams()[0] // pcm_s16le, 2 channels
//
// # Output Format
//
//   - Sample format: signed 16-bit little-endian
//   - Channels: 2 (mono files are duplicated by go-mp3)
//   - Sample rate: as stored in the file
//   - Packet size: one MPEG-1 frame (1152 samples) unless PacketSamples is set
//
// # Limitations
//
// MP3 writing is not supported; there is no MP3 encoder.
package mp3
