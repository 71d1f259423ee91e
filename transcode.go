// SPDX-License-Identifier: EPL-2.0

package audxcode

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/pipeline"
)

// Output holds the encoder parameters of a transcode. Zero values are
// filled from the output container and the input stream.
type Output struct {
	// Codec overrides the output container's default codec.
	Codec string
	// Channels of the encoded stream. Zero keeps the input layout.
	Channels int
	BitRate  int
	// FrameSize is used by codecs without a native frame size.
	FrameSize int
}

// TranscodeFile transcodes the single audio stream of inPath into outPath.
// Containers are chosen by file extension and codecs by name, both through
// reg. A nil reg means DefaultRegistry().
//
// The input is validated and every collaborator is resolved before the
// output file is created.
func TranscodeFile(ctx context.Context, reg *audio.Registry, inPath, outPath string, out Output, opts ...pipeline.Option) (stats pipeline.Stats, err error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	opener, ok := reg.Demuxer(audio.ExtOf(inPath))
	if !ok {
		return stats, audio.NewError(audio.KindConfiguration, "open input",
			fmt.Errorf("%w: %q", audio.ErrUnknownFormat, inPath))
	}
	muxers, ok := reg.Muxer(audio.ExtOf(outPath))
	if !ok {
		return stats, audio.NewError(audio.KindConfiguration, "open output",
			fmt.Errorf("%w: %q", audio.ErrUnknownFormat, outPath))
	}

	in, err := os.Open(inPath)
	if err != nil {
		return stats, audio.NewError(audio.KindIO, "open input", err)
	}
	defer in.Close()

	demux, err := opener.Open(in)
	if err != nil {
		return stats, audio.NewError(audio.KindIO, "open input", err)
	}
	defer demux.Close()

	info, err := pipeline.CheckStreams(demux)
	if err != nil {
		return stats, err
	}

	decoders, ok := reg.Decoder(info.Codec)
	if !ok {
		return stats, audio.NewError(audio.KindConfiguration, "open decoder",
			fmt.Errorf("%w: %s", audio.ErrNoDecoder, info.Codec))
	}
	dec, err := decoders.NewDecoder(info)
	if err != nil {
		return stats, audio.NewError(audio.KindConfiguration, "open decoder", err)
	}
	defer dec.Close()

	params := encoderParams(out, muxers.DefaultCodec(), dec.Format())
	encoders, ok := reg.Encoder(params.Codec)
	if !ok {
		return stats, audio.NewError(audio.KindConfiguration, "open encoder",
			fmt.Errorf("%w: %s", audio.ErrNoEncoder, params.Codec))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return stats, audio.NewError(audio.KindIO, "open output", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = audio.NewError(audio.KindIO, "close output", cerr)
		}
	}()

	mux, err := muxers.NewMuxer(f, audio.StreamInfo{
		Codec:   params.Codec,
		Format:  audio.Format{SampleRate: params.SampleRate, Channels: params.Channels},
		BitRate: params.BitRate,
	})
	if err != nil {
		return stats, audio.NewError(audio.KindConfiguration, "open output", err)
	}

	enc, err := encoders.NewEncoder(params)
	if err != nil {
		return stats, audio.NewError(audio.KindConfiguration, "open encoder", err)
	}
	defer enc.Close()

	t, err := pipeline.New(demux, dec, enc, mux, opts...)
	if err != nil {
		return stats, err
	}

	return t.Run(ctx)
}

// encoderParams fills the zero fields of out. The sample rate always
// follows the decoder since the pipeline does not resample.
func encoderParams(out Output, defaultCodec string, in audio.Format) audio.EncoderParams {
	p := audio.EncoderParams{
		Codec:      out.Codec,
		SampleRate: in.SampleRate,
		Channels:   out.Channels,
		BitRate:    out.BitRate,
		FrameSize:  out.FrameSize,
	}
	if p.Codec == "" {
		p.Codec = defaultCodec
	}
	if p.Channels == 0 {
		p.Channels = in.Channels
	}

	return p
}

// IsUnsupported reports whether err means the requested formats or codecs
// are not available, as opposed to a failure while processing.
func IsUnsupported(err error) bool {
	return errors.Is(err, audio.ErrUnknownFormat) ||
		errors.Is(err, audio.ErrNoDecoder) ||
		errors.Is(err, audio.ErrNoEncoder)
}
