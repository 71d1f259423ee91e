// SPDX-License-Identifier: EPL-2.0

// Package observe provides the OpenTelemetry metrics and tracing used by
// the transcode pipeline.
//
// Instruments are created through the OpenTelemetry Metrics API. Tests
// should build their own [Metrics] with [NewMetrics] and a private
// [metric.MeterProvider]; [DefaultMetrics] uses the global provider.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope of every instrument.
const meterName = "github.com/ik5/audxcode"

// Metrics holds the pipeline instruments. All fields are safe for
// concurrent use.
type Metrics struct {
	PacketsRead      metric.Int64Counter
	FramesDecoded    metric.Int64Counter
	SamplesConverted metric.Int64Counter
	// FramesEncoded counts frames submitted to the encoder. Use with
	// attribute.String("phase", "drain"|"final").
	FramesEncoded  metric.Int64Counter
	PacketsWritten metric.Int64Counter
	FlushCalls     metric.Int64Counter

	// RunDuration tracks wall time of a whole transcode. Use with
	// attribute.String("status", "ok"|"error").
	RunDuration metric.Float64Histogram
}

var runBuckets = []float64{
	0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300,
}

// NewMetrics creates every instrument from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.PacketsRead, err = m.Int64Counter("audxcode.packets.read",
		metric.WithDescription("Packets read from the demuxer."),
	); err != nil {
		return nil, err
	}
	if met.FramesDecoded, err = m.Int64Counter("audxcode.frames.decoded",
		metric.WithDescription("Frames returned by the decoder."),
	); err != nil {
		return nil, err
	}
	if met.SamplesConverted, err = m.Int64Counter("audxcode.samples.converted",
		metric.WithDescription("Per-channel samples appended to the sample buffer."),
	); err != nil {
		return nil, err
	}
	if met.FramesEncoded, err = m.Int64Counter("audxcode.frames.encoded",
		metric.WithDescription("Frames submitted to the encoder by phase."),
	); err != nil {
		return nil, err
	}
	if met.PacketsWritten, err = m.Int64Counter("audxcode.packets.written",
		metric.WithDescription("Packets handed to the muxer."),
	); err != nil {
		return nil, err
	}
	if met.FlushCalls, err = m.Int64Counter("audxcode.flush.calls",
		metric.WithDescription("Null frames submitted while flushing the encoder."),
	); err != nil {
		return nil, err
	}
	if met.RunDuration, err = m.Float64Histogram("audxcode.run.duration",
		metric.WithDescription("Wall time of a transcode run."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(runBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a package-level instance built on the global
// meter provider. It panics if instrument creation fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordFrameEncoded counts one frame submitted in the given phase.
func (m *Metrics) RecordFrameEncoded(ctx context.Context, phase string) {
	m.FramesEncoded.Add(ctx, 1, metric.WithAttributes(attribute.String("phase", phase)))
}

// RecordRun records the duration of a finished run.
func (m *Metrics) RecordRun(ctx context.Context, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.RunDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("status", status)))
}
