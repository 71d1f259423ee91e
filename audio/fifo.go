// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// FIFO is an unbounded queue of planar samples. It bridges the frame size a
// decoder produces and the frame size an encoder requires.
//
// Size always equals the samples written minus the samples read. Reads
// never return fewer samples than requested: asking for more than Size is
// a KindBufferConsistency error and leaves the queue untouched.
type FIFO struct {
	channels int
	// planes[c][head:] holds the queued samples of channel c.
	planes [][]float32
	head   int
}

// NewFIFO creates a queue for frames with the given channel count. capacity
// is the initial per-channel allocation.
func NewFIFO(channels, capacity int) (*FIFO, error) {
	if channels < 1 {
		return nil, NewError(KindConfiguration, "fifo: new", ErrChannelCount)
	}
	if capacity < 0 {
		capacity = 0
	}

	q := &FIFO{
		channels: channels,
		planes:   make([][]float32, channels),
	}
	for c := range q.planes {
		q.planes[c] = make([]float32, 0, capacity)
	}

	return q, nil
}

func (q *FIFO) Channels() int { return q.channels }

// Size returns the number of queued samples per channel.
func (q *FIFO) Size() int {
	return len(q.planes[0]) - q.head
}

// Write appends every sample of f to the tail of the queue.
func (q *FIFO) Write(f *Frame) error {
	if f.Channels() != q.channels {
		return NewError(KindBufferConsistency, "fifo: write",
			fmt.Errorf("%w: got %d channels, want %d", ErrLayoutMismatch, f.Channels(), q.channels))
	}

	n := f.NumSamples()
	for c, plane := range f.Samples {
		if len(plane) != n {
			return NewError(KindBufferConsistency, "fifo: write",
				fmt.Errorf("%w: channel %d has %d samples, want %d", ErrShortWrite, c, len(plane), n))
		}
	}
	if n == 0 {
		return nil
	}

	if err := q.grow(n); err != nil {
		return err
	}

	for c, plane := range f.Samples {
		p := q.planes[c]
		start := len(p)
		p = p[:start+n]
		if copied := copy(p[start:], plane); copied != n {
			return NewError(KindBufferConsistency, "fifo: write",
				fmt.Errorf("%w: copied %d of %d samples", ErrShortWrite, copied, n))
		}
		q.planes[c] = p
	}

	return nil
}

// grow makes room for n more samples per channel. Consumed space at the
// head is reclaimed before a reallocation is considered.
func (q *FIFO) grow(n int) error {
	size := q.Size()
	if n > math.MaxInt-size {
		return NewError(KindAllocation, "fifo: grow", ErrBufferOverflow)
	}
	need := size + n

	capacity := cap(q.planes[0])
	if capacity-q.head >= need {
		return nil
	}

	if capacity >= need {
		for c, p := range q.planes {
			copy(p[:size], p[q.head:])
			q.planes[c] = p[:size]
		}
		q.head = 0
		return nil
	}

	newCap := capacity * 2
	if newCap < need {
		newCap = need
	}
	for c, p := range q.planes {
		np := make([]float32, size, newCap)
		copy(np, p[q.head:])
		q.planes[c] = np
	}
	q.head = 0

	return nil
}

// Read removes exactly n samples per channel from the head of the queue
// into dst, resizing dst to n.
func (q *FIFO) Read(dst *Frame, n int) error {
	if n < 0 || n > q.Size() {
		return NewError(KindBufferConsistency, "fifo: read",
			fmt.Errorf("%w: want %d samples, have %d", ErrShortRead, n, q.Size()))
	}
	if dst.Format.Channels != q.channels {
		return NewError(KindBufferConsistency, "fifo: read",
			fmt.Errorf("%w: got %d channels, want %d", ErrLayoutMismatch, dst.Format.Channels, q.channels))
	}

	dst.Resize(n)
	for c, p := range q.planes {
		if copied := copy(dst.Samples[c], p[q.head:q.head+n]); copied != n {
			return NewError(KindBufferConsistency, "fifo: read",
				fmt.Errorf("%w: copied %d of %d samples", ErrShortRead, copied, n))
		}
	}

	q.head += n
	if q.head == len(q.planes[0]) {
		q.Reset()
	}

	return nil
}

// Reset drops every queued sample and keeps the allocation.
func (q *FIFO) Reset() {
	for c := range q.planes {
		q.planes[c] = q.planes[c][:0]
	}
	q.head = 0
}
