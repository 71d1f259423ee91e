// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	// ErrFrameTooLarge indicates a frame longer than the encoder frame size
	ErrFrameTooLarge = errors.New("frame exceeds encoder frame size")
)
