// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile = errors.New("not a WAV file")
	// ErrUnsupportedWavLayout indicates a sample encoding other than
	// integer PCM or 32-bit float
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
	// ErrUnsupportedOutputCodec indicates a codec the muxer cannot store
	ErrUnsupportedOutputCodec = errors.New("codec cannot be stored in WAV")
)
