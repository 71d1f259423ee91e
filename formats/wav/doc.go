// SPDX-License-Identifier: EPL-2.0

// Package wav provides a WAV demuxer and muxer.
//
// Parsing and writing of the RIFF structure is done by
// github.com/go-audio/wav. The demuxer hands out raw PCM packets; pair it
// with a decoder from the pcm package for the codec named in its stream
// info.
//
// # Supported Formats
//
// Reading:
//   - PCM unsigned 8-bit, signed 16, 24 and 32-bit
//   - IEEE float 32-bit
//   - WAVE_FORMAT_EXTENSIBLE with one of the integer depths above
//   - Any channel count and sample rate
//
// Writing: pcm_u8, pcm_s16le (default), pcm_s24le and pcm_s32le.
//
// # Reading
//
//	f, _ := os.Open("audio.wav")
//	demux, err := wav.Container{}.Open(f)
//	if err != nil {
//	    // Handle error
//	}
//	info := demux.Streams()[0]
//	pkt, err := demux.ReadPacket()
//
// # Writing
//
//	mux, _ := wav.Container{}.NewMuxer(out, audio.StreamInfo{
//	    Codec:  audio.CodecPCMS16LE,
//	    Format: audio.Format{SampleRate: 44100, Channels: 2},
//	})
//	mux.WriteHeader()
//	mux.WritePacket(pkt)
//	mux.WriteTrailer()
//
// The output must be seekable: the sizes in the RIFF header are patched
// once the trailer is written.
package wav
