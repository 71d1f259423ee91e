// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	// ErrNotVorbisFile indicates the Ogg stream does not start with Vorbis headers
	ErrNotVorbisFile = errors.New("not an Ogg Vorbis file")
)
