// SPDX-License-Identifier: EPL-2.0

// Package aiff provides an AIFF (Audio Interchange File Format) demuxer
// and muxer.
//
// This package uses github.com/go-audio/aiff to parse and write the IFF
// chunks. The demuxer hands out big-endian PCM packets for a decoder from
// the pcm package.
//
// # Supported Formats
//
// Reading: signed PCM at 8, 16, 24 and 32 bits, any channel count and
// sample rate. Compressed AIFF-C is not supported.
//
// Writing: pcm_s16be (default), pcm_s8, pcm_s24be and pcm_s32be.
//
// # Reading AIFF Files
//
//	f, _ := os.Open("audio.aif")
//	demux, err := aiff.Container{}.Open(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("Not an AIFF file")
//	}
//	pkt, err := demux.ReadPacket()
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Originated on Apple platforms (WAV on Windows)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//
// Both store uncompressed PCM, so a decoder from the pcm package handles
// either once the codec name is known.
package aiff
