// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 clamps x to [-1, 1] and scales it to a signed 16-bit value.
func Float32ToInt16(x float32) int16 {
	return int16(FloatToInt(x, 16))
}

// Int16ToFloat32 is the inverse of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// FloatToInt scales x to a signed integer of the given bit depth (8..32),
// rounding to nearest and clamping to the representable range.
func FloatToInt(x float32, bits int) int32 {
	scale := math.Ldexp(1, bits-1)
	v := math.Round(float64(Clamp(x)) * scale)
	if v >= scale {
		return int32(scale - 1)
	}

	return int32(v)
}

// IntToFloat normalizes a signed integer sample of the given bit depth.
func IntToFloat(v int32, bits int) float32 {
	return float32(float64(v) / math.Ldexp(1, bits-1))
}

// Quantize snaps x to the grid of a signed integer format with the given
// bit depth, so that encoding the result is lossless.
func Quantize(x float32, bits int) float32 {
	return IntToFloat(FloatToInt(x, bits), bits)
}

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}

	return x
}
