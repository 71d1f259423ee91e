// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrNotMP3File indicates go-mp3 found no decodable frame header
	ErrNotMP3File = errors.New("not an MP3 file")
)
