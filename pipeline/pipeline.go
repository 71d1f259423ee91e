// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/internal/observe"
)

// ErrAlreadyRun is returned by a second call to Run.
var ErrAlreadyRun = errors.New("pipeline: transcoder already ran")

// State is the phase the orchestrator is in.
type State int

const (
	// StateFilling decodes and buffers until a full encoder frame is
	// available or input ends.
	StateFilling State = iota
	// StateDraining encodes full frames while the buffer holds them.
	StateDraining
	// StateFinished encodes the partial remainder after input ended.
	StateFinished
	// StateFlushing drains the encoder's internal latency.
	StateFlushing
	// StateDone is terminal.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateFilling:
		return "filling"
	case StateDraining:
		return "draining"
	case StateFinished:
		return "finished"
	case StateFlushing:
		return "flushing"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Resampler converts a decoded frame into the encoder's input format. It
// must return exactly as many samples as it is given.
type Resampler interface {
	Convert(f *audio.Frame) (*audio.Frame, error)
}

// Stats summarizes a run.
type Stats struct {
	// Iterations counts entries into the filling phase.
	Iterations     int
	PacketsRead    int
	FramesDecoded  int
	SamplesDecoded int64
	// SamplesConverted counts per-channel samples appended to the buffer.
	SamplesConverted int64
	FramesEncoded    int
	SamplesEncoded   int64
	// FinalFrameSamples is the size of the partial last frame, or 0.
	FinalFrameSamples int
	FlushCalls        int
	PacketsWritten    int
	Duration          time.Duration
}

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Transcoder) {
		if l != nil {
			t.log = l
		}
	}
}

// WithMetrics sets the metric instruments. nil disables metrics.
func WithMetrics(m *observe.Metrics) Option {
	return func(t *Transcoder) { t.obs = observer{m: m} }
}

// WithTracer sets the tracer used for the run span.
func WithTracer(tr trace.Tracer) Option {
	return func(t *Transcoder) {
		if tr != nil {
			t.tracer = tr
		}
	}
}

// WithResampler replaces the default audio.Converter.
func WithResampler(r Resampler) Option {
	return func(t *Transcoder) { t.resampler = r }
}

// Transcoder moves one stream from a demuxer to a muxer, re-segmenting
// decoded audio into the encoder's frame size.
//
// It owns the sample buffer and the timestamp counter for the duration of
// the run. Collaborators are borrowed; closing them is up to the caller.
type Transcoder struct {
	decode    decodeStage
	encode    encodeStage
	resampler Resampler
	fifo      *audio.FIFO
	out       *audio.Frame
	frameSize int

	// pts is the timestamp assigned to the next frame submitted to the
	// encoder, in samples.
	pts   int64
	state State
	stats Stats
	ran   bool

	log    *slog.Logger
	tracer trace.Tracer
	obs    observer
}

// CheckStreams returns the only stream of d, or a configuration error if
// d does not expose exactly one.
func CheckStreams(d audio.Demuxer) (audio.StreamInfo, error) {
	streams := d.Streams()
	if len(streams) != 1 {
		return audio.StreamInfo{}, audio.NewError(audio.KindConfiguration, "open input",
			fmt.Errorf("%w: found %d", audio.ErrStreamCount, len(streams)))
	}
	return streams[0], nil
}

// New validates the collaborators and prepares a run. It fails with a
// configuration error when the input does not hold exactly one stream, the
// encoder has no fixed frame size, or the sample rates differ.
func New(demux audio.Demuxer, dec audio.Decoder, enc audio.Encoder, mux audio.Muxer, opts ...Option) (*Transcoder, error) {
	if _, err := CheckStreams(demux); err != nil {
		return nil, err
	}

	frameSize := enc.FrameSize()
	if frameSize <= 0 {
		return nil, audio.NewError(audio.KindConfiguration, "open encoder",
			fmt.Errorf("%w: %d", audio.ErrFrameSize, frameSize))
	}

	inFmt, outFmt := dec.Format(), enc.Format()
	if inFmt.SampleRate != outFmt.SampleRate {
		return nil, audio.NewError(audio.KindConfiguration, "open encoder",
			fmt.Errorf("%w: %d Hz in, %d Hz out", audio.ErrRateMismatch, inFmt.SampleRate, outFmt.SampleRate))
	}

	t := &Transcoder{
		frameSize: frameSize,
		log:       slog.Default(),
		tracer:    observe.Tracer(),
		obs:       observer{m: observe.DefaultMetrics()},
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.resampler == nil {
		conv, err := audio.NewConverter(inFmt, outFmt)
		if err != nil {
			return nil, err
		}
		t.resampler = conv
	}

	fifo, err := audio.NewFIFO(outFmt.Channels, frameSize)
	if err != nil {
		return nil, err
	}
	t.fifo = fifo
	t.out = audio.NewFrame(outFmt, frameSize)

	t.decode = decodeStage{demux: demux, dec: dec, stats: &t.stats, obs: t.obs}
	t.encode = encodeStage{enc: enc, mux: mux, stats: &t.stats, obs: t.obs}

	return t, nil
}

// FrameSize is the encoder frame size the buffer is drained in.
func (t *Transcoder) FrameSize() int { return t.frameSize }

// State returns the current phase.
func (t *Transcoder) State() State { return t.state }

// Run writes the header, moves every sample of the input through the
// encoder, flushes it and writes the trailer. ctx is checked between
// filling phases.
func (t *Transcoder) Run(ctx context.Context) (stats Stats, err error) {
	if t.ran {
		return t.stats, ErrAlreadyRun
	}
	t.ran = true

	start := time.Now()
	ctx, span := t.tracer.Start(ctx, "pipeline.Run",
		trace.WithAttributes(attribute.Int("audxcode.frame_size", t.frameSize)))
	log := observe.Logger(ctx, t.log)

	defer func() {
		t.stats.Duration = time.Since(start)
		stats = t.stats
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(
			attribute.Int("audxcode.iterations", t.stats.Iterations),
			attribute.Int64("audxcode.samples_encoded", t.stats.SamplesEncoded),
		)
		span.End()
		t.obs.run(ctx, t.stats.Duration.Seconds(), err)
	}()

	if err := t.encode.mux.WriteHeader(); err != nil {
		return t.stats, audio.NewError(audio.KindIO, "write header", err)
	}

	for t.state != StateDone {
		if err := t.step(ctx, log); err != nil {
			log.Debug("pipeline aborted", "state", t.state, "err", err)
			return t.stats, err
		}
	}

	if err := t.encode.mux.WriteTrailer(); err != nil {
		return t.stats, audio.NewError(audio.KindIO, "write trailer", err)
	}

	log.Debug("pipeline done",
		"iterations", t.stats.Iterations,
		"frames_encoded", t.stats.FramesEncoded,
		"samples_encoded", t.stats.SamplesEncoded,
		"packets_written", t.stats.PacketsWritten,
	)

	return t.stats, nil
}

func (t *Transcoder) step(ctx context.Context, log *slog.Logger) error {
	switch t.state {
	case StateFilling:
		if err := ctx.Err(); err != nil {
			return err
		}
		t.stats.Iterations++

		eos, err := t.fill(ctx)
		if err != nil {
			return err
		}
		if eos {
			t.transition(ctx, log, StateFinished)
		} else {
			t.transition(ctx, log, StateDraining)
		}

	case StateDraining:
		for t.fifo.Size() >= t.frameSize {
			if err := t.emit(ctx, t.frameSize, "drain"); err != nil {
				return err
			}
		}
		t.transition(ctx, log, StateFilling)

	case StateFinished:
		for t.fifo.Size() >= t.frameSize {
			if err := t.emit(ctx, t.frameSize, "drain"); err != nil {
				return err
			}
		}
		if n := t.fifo.Size(); n > 0 {
			t.stats.FinalFrameSamples = n
			if err := t.emit(ctx, n, "final"); err != nil {
				return err
			}
		}
		t.transition(ctx, log, StateFlushing)

	case StateFlushing:
		for {
			produced, err := t.encode.encode(ctx, nil, &t.pts)
			if err != nil {
				return err
			}
			if !produced {
				break
			}
		}
		t.transition(ctx, log, StateDone)
	}

	return nil
}

// fill decodes, converts and buffers until a full frame is available. It
// reports true once the decoder is fully drained.
func (t *Transcoder) fill(ctx context.Context) (bool, error) {
	for t.fifo.Size() < t.frameSize {
		frame, status, err := t.decode.next(ctx)
		if err != nil {
			return false, err
		}

		switch status {
		case audio.StatusNeedMoreInput:
			continue
		case audio.StatusEndOfStream:
			return true, nil
		}

		if err := t.store(ctx, frame); err != nil {
			return false, err
		}
	}

	return false, nil
}

// store converts one decoded frame and appends it to the buffer.
func (t *Transcoder) store(ctx context.Context, frame *audio.Frame) error {
	n := frame.NumSamples()

	converted, err := t.resampler.Convert(frame)
	if err != nil {
		return audio.NewError(audio.KindCodec, "convert frame", err)
	}
	if got := converted.NumSamples(); got != n {
		return audio.NewError(audio.KindBufferConsistency, "convert frame",
			fmt.Errorf("%w: %d in, %d out", audio.ErrSampleCount, n, got))
	}

	if err := t.fifo.Write(converted); err != nil {
		return err
	}
	t.stats.SamplesConverted += int64(n)
	t.obs.samplesConverted(ctx, n)

	return nil
}

// emit takes n samples off the buffer and encodes them as one frame.
func (t *Transcoder) emit(ctx context.Context, n int, phase string) error {
	if err := t.fifo.Read(t.out, n); err != nil {
		return err
	}
	t.obs.frameEncoded(ctx, phase)

	_, err := t.encode.encode(ctx, t.out, &t.pts)
	return err
}

func (t *Transcoder) transition(ctx context.Context, log *slog.Logger, next State) {
	log.Debug("state transition", "from", t.state, "to", next, "buffered", t.fifo.Size())
	trace.SpanFromContext(ctx).AddEvent(next.String(),
		trace.WithAttributes(attribute.Int("audxcode.buffered", t.fifo.Size())))
	t.state = next
}
