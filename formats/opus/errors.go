// SPDX-License-Identifier: EPL-2.0

package opus

import "errors"

var (
	// ErrNotOpusFile indicates the Ogg stream does not start with an OpusHead page
	ErrNotOpusFile = errors.New("not an Ogg Opus file")

	// ErrUnsupportedRate indicates a sample rate libopus cannot encode at
	ErrUnsupportedRate = errors.New("opus supports 8, 12, 16, 24 and 48 kHz only")

	// ErrEmptyPacket indicates a packet without a TOC byte
	ErrEmptyPacket = errors.New("empty opus packet")

	// ErrFrameTooLarge indicates a frame longer than the encoder frame size
	ErrFrameTooLarge = errors.New("frame exceeds encoder frame size")
)
