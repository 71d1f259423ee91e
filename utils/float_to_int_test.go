// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "max positive", input: 1, want: math.MaxInt16},
		{name: "max negative", input: -1, want: math.MinInt16},
		{name: "half positive", input: 0.5, want: 16384},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "small positive", input: 0.001, want: 33},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp way under min", input: -100, want: math.MinInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Every 16-bit value must survive a trip through float32.
func TestInt16RoundTrip(t *testing.T) {
	t.Parallel()

	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		got := Float32ToInt16(Int16ToFloat32(int16(v)))
		if int(got) != v {
			t.Fatalf("Float32ToInt16(Int16ToFloat32(%d)) = %d", v, got)
		}
	}
}

func TestFloatToInt_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits  int
		input float32
		want  int32
	}{
		{bits: 8, input: 1, want: 127},
		{bits: 8, input: -1, want: -128},
		{bits: 8, input: 0.5, want: 64},
		{bits: 24, input: 1, want: 8388607},
		{bits: 24, input: -1, want: -8388608},
		{bits: 32, input: 1, want: math.MaxInt32},
		{bits: 32, input: -1, want: math.MinInt32},
		{bits: 32, input: 0, want: 0},
		{bits: 8, input: 3, want: 127},
		{bits: 24, input: -1.5, want: -8388608},
		{bits: 32, input: -40, want: math.MinInt32},
	}

	for _, tt := range tests {
		if got := FloatToInt(tt.input, tt.bits); got != tt.want {
			t.Errorf("FloatToInt(%v, %d) = %d, want %d", tt.input, tt.bits, got, tt.want)
		}
	}
}

func TestQuantize(t *testing.T) {
	t.Parallel()

	// 8-bit grid step is 1/128.
	got := Quantize(0.01, 8)
	if want := float32(1) / 128; got != want {
		t.Errorf("Quantize(0.01, 8) = %v, want %v", got, want)
	}

	if got := Quantize(2, 16); got != float32(math.MaxInt16)/32768 {
		t.Errorf("Quantize(2, 16) = %v, want clamp to max", got)
	}

	// Quantizing twice is a no-op.
	for _, x := range []float32{-0.73, -0.1, 0, 0.33333, 0.999} {
		once := Quantize(x, 16)
		if twice := Quantize(once, 16); twice != once {
			t.Errorf("Quantize not idempotent for %v: %v then %v", x, once, twice)
		}
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	for in, want := range map[float32]float32{-3: -1, -1: -1, 0.25: 0.25, 1: 1, 7: 1} {
		if got := Clamp(in); got != want {
			t.Errorf("Clamp(%v) = %v, want %v", in, got, want)
		}
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	floatSamples := make([]float32, 8000)
	int16Samples := make([]int16, 8000)
	for i := range floatSamples {
		floatSamples[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		for j := range floatSamples {
			int16Samples[j] = Float32ToInt16(floatSamples[j])
		}
	}
}

func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float32ToInt16(0.5)
	})

	if allocs > 0 {
		t.Errorf("Float32ToInt16 allocated %v times, want 0", allocs)
	}
}
