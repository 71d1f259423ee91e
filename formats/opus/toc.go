// SPDX-License-Identifier: EPL-2.0

package opus

import "fmt"

// SampleRate is the rate every Opus stream is decoded and timestamped at.
const SampleRate = 48000

// frameSamples is the duration of one frame per TOC configuration, at 48 kHz.
var frameSamples = [32]int{
	// SILK NB, MB, WB: 10, 20, 40, 60 ms
	480, 960, 1920, 2880, 480, 960, 1920, 2880, 480, 960, 1920, 2880,
	// Hybrid SWB, FB: 10, 20 ms
	480, 960, 480, 960,
	// CELT NB, WB, SWB, FB: 2.5, 5, 10, 20 ms
	120, 240, 480, 960, 120, 240, 480, 960,
	120, 240, 480, 960, 120, 240, 480, 960,
}

// PacketSamples returns the duration of an Opus packet in 48 kHz samples,
// read from its TOC byte (RFC 6716 section 3.1).
func PacketSamples(packet []byte) (int, error) {
	if len(packet) == 0 {
		return 0, ErrEmptyPacket
	}

	toc := packet[0]
	per := frameSamples[toc>>3]

	switch toc & 0x3 {
	case 0:
		return per, nil
	case 1, 2:
		return 2 * per, nil
	}

	if len(packet) < 2 {
		return 0, fmt.Errorf("%w: missing frame count", ErrEmptyPacket)
	}
	return int(packet[1]&0x3f) * per, nil
}

// silencePacket is a 20 ms CELT fullband frame of digital silence.
var silencePacket = []byte{0xF8, 0xFF, 0xFE}

const silenceSamples = 960
