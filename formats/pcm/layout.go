// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/utils"
)

// layout describes how one sample is stored.
type layout struct {
	size      int
	bigEndian bool
	unsigned  bool
	float     bool
	format    audio.SampleFormat
}

var layouts = map[string]layout{
	audio.CodecPCMU8:    {size: 1, unsigned: true, format: audio.SampleU8},
	audio.CodecPCMS8:    {size: 1, format: audio.SampleS8},
	audio.CodecPCMS16LE: {size: 2, format: audio.SampleS16},
	audio.CodecPCMS16BE: {size: 2, bigEndian: true, format: audio.SampleS16},
	audio.CodecPCMS24LE: {size: 3, format: audio.SampleS24},
	audio.CodecPCMS24BE: {size: 3, bigEndian: true, format: audio.SampleS24},
	audio.CodecPCMS32LE: {size: 4, format: audio.SampleS32},
	audio.CodecPCMS32BE: {size: 4, bigEndian: true, format: audio.SampleS32},
	audio.CodecPCMF32LE: {size: 4, float: true, format: audio.SampleF32},
}

// Codecs lists every PCM codec name this package handles.
func Codecs() []string {
	return []string{
		audio.CodecPCMU8, audio.CodecPCMS8,
		audio.CodecPCMS16LE, audio.CodecPCMS16BE,
		audio.CodecPCMS24LE, audio.CodecPCMS24BE,
		audio.CodecPCMS32LE, audio.CodecPCMS32BE,
		audio.CodecPCMF32LE,
	}
}

// CodecFor returns the signed PCM codec for a bit depth and byte order,
// or "" when there is none. 8-bit is unsigned in little-endian containers.
func CodecFor(bits int, bigEndian bool) string {
	switch {
	case bits == 8 && bigEndian:
		return audio.CodecPCMS8
	case bits == 8:
		return audio.CodecPCMU8
	case bits == 16 && bigEndian:
		return audio.CodecPCMS16BE
	case bits == 16:
		return audio.CodecPCMS16LE
	case bits == 24 && bigEndian:
		return audio.CodecPCMS24BE
	case bits == 24:
		return audio.CodecPCMS24LE
	case bits == 32 && bigEndian:
		return audio.CodecPCMS32BE
	case bits == 32:
		return audio.CodecPCMS32LE
	}
	return ""
}

// BitDepth returns the sample width of a PCM codec, or 0 if unknown.
func BitDepth(codec string) int {
	l, ok := layouts[codec]
	if !ok {
		return 0
	}
	return l.size * 8
}

func (l layout) bits() int { return l.size * 8 }

func (l layout) read(b []byte) float32 {
	if l.float {
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	}

	var u uint32
	if l.bigEndian {
		for i := 0; i < l.size; i++ {
			u = u<<8 | uint32(b[i])
		}
	} else {
		for i := l.size - 1; i >= 0; i-- {
			u = u<<8 | uint32(b[i])
		}
	}

	if l.unsigned {
		return utils.IntToFloat(int32(u)-128, 8)
	}

	// Sign-extend from the sample width.
	shift := 32 - l.bits()
	v := int32(u<<shift) >> shift

	return utils.IntToFloat(v, l.bits())
}

func (l layout) write(b []byte, x float32) {
	if l.float {
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
		return
	}

	v := utils.FloatToInt(x, l.bits())
	if l.unsigned {
		b[0] = byte(v + 128)
		return
	}

	u := uint32(v)
	if l.bigEndian {
		for i := l.size - 1; i >= 0; i-- {
			b[i] = byte(u)
			u >>= 8
		}
		return
	}
	for i := 0; i < l.size; i++ {
		b[i] = byte(u)
		u >>= 8
	}
}
