// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"

	"github.com/ik5/audxcode/internal/observe"
)

// observer forwards stage events to the metric instruments. The zero
// value records nothing.
type observer struct {
	m *observe.Metrics
}

func (o observer) packetRead(ctx context.Context) {
	if o.m != nil {
		o.m.PacketsRead.Add(ctx, 1)
	}
}

func (o observer) frameDecoded(ctx context.Context) {
	if o.m != nil {
		o.m.FramesDecoded.Add(ctx, 1)
	}
}

func (o observer) samplesConverted(ctx context.Context, n int) {
	if o.m != nil {
		o.m.SamplesConverted.Add(ctx, int64(n))
	}
}

func (o observer) frameEncoded(ctx context.Context, phase string) {
	if o.m != nil {
		o.m.RecordFrameEncoded(ctx, phase)
	}
}

func (o observer) packetWritten(ctx context.Context) {
	if o.m != nil {
		o.m.PacketsWritten.Add(ctx, 1)
	}
}

func (o observer) flushCall(ctx context.Context) {
	if o.m != nil {
		o.m.FlushCalls.Add(ctx, 1)
	}
}

func (o observer) run(ctx context.Context, seconds float64, err error) {
	if o.m != nil {
		o.m.RecordRun(ctx, seconds, err)
	}
}
