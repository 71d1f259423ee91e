// SPDX-License-Identifier: EPL-2.0

// Package audxcode transcodes the single audio stream of one file into
// another container and codec.
//
// The work is split the same way in every package of the module:
//   - audio holds the shared types, the collaborator interfaces, the
//     sample FIFO and the format converter
//   - formats/* provide demuxers, decoders, encoders and muxers
//   - pipeline drives them through a fill, drain and flush state machine
//
// # Quick Start
//
//	stats, err := audxcode.TranscodeFile(ctx, nil, "in.wav", "out.aiff", audxcode.Output{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("iterations:", stats.Iterations)
//
// A nil registry means DefaultRegistry(). Output fields left at zero are
// taken from the output container's default codec and the input layout.
//
// # Supported Formats
//
//   - WAV: read PCM and float, write pcm_u8, pcm_s16le, pcm_s24le, pcm_s32le
//   - AIFF: read and write 8 to 32 bit big-endian PCM
//   - MP3: read only
//   - Ogg: read Vorbis or Opus, write Opus
//   - Opus: read and write
//
// The sample rate is never changed. Converting to Opus therefore needs an
// input at 8, 12, 16, 24 or 48 kHz.
//
// # Errors
//
// Every error returned by TranscodeFile carries an audio.Kind:
//
//	if audio.IsKind(err, audio.KindConfiguration) {
//	    // unsupported input or output
//	}
package audxcode
