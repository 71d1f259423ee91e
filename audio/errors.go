// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	ErrStreamCount      = errors.New("input must contain exactly one audio stream")
	ErrRateMismatch     = errors.New("input and output sample rates differ")
	ErrChannelCount     = errors.New("channel count must be at least 1")
	ErrUnsupportedCodec = errors.New("unsupported codec")
	ErrUnknownFormat    = errors.New("unknown container format")
	ErrNoEncoder        = errors.New("no encoder for codec")
	ErrNoDecoder        = errors.New("no decoder for codec")
	ErrFrameSize        = errors.New("encoder frame size must be positive")

	ErrShortRead       = errors.New("short read from sample buffer")
	ErrShortWrite      = errors.New("short write to sample buffer")
	ErrLayoutMismatch  = errors.New("frame channel layout does not match buffer")
	ErrSampleCount     = errors.New("converter changed the sample count")
	ErrBufferOverflow  = errors.New("sample buffer capacity overflow")
	ErrDecoderStalled  = errors.New("decoder asked for input after draining")
	ErrPacketPending   = errors.New("codec has a pending output")
	ErrPartialSample   = errors.New("packet size is not a multiple of the sample block")
)

// Kind classifies fatal errors.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfiguration covers wrong stream counts, rate mismatches and
	// missing codecs.
	KindConfiguration
	KindAllocation
	// KindIO covers open, read and write failures on demux and mux.
	KindIO
	// KindCodec covers decode and encode failures.
	KindCodec
	// KindBufferConsistency is a short sample buffer read or write.
	KindBufferConsistency
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindAllocation:
		return "allocation error"
	case KindIO:
		return "i/o error"
	case KindCodec:
		return "codec error"
	case KindBufferConsistency:
		return "buffer consistency error"
	}

	return "error"
}

// Error is a classified failure of a named operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError classifies err under kind. An err that is already classified
// keeps its kind and gains op as outer context.
func NewError(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}

	return KindUnknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
