// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/aiff"
	"github.com/ik5/audxcode/internal/audiotest"
)

// Example writes a short AIFF file and inspects it.
func Example() {
	out := audiotest.NewBuffer(nil)
	mux, _ := aiff.Container{}.NewMuxer(out, audio.StreamInfo{
		Codec:  audio.CodecPCMS16BE,
		Format: audio.Format{SampleRate: 44100, Channels: 2},
	})

	_ = mux.WriteHeader()
	_ = mux.WritePacket(&audio.Packet{Data: make([]byte, 4096*4), Samples: 4096})
	_ = mux.WriteTrailer()

	demux, err := aiff.Container{}.Open(bytes.NewReader(out.Bytes()))
	if err != nil {
		fmt.Printf("Open error: %v\n", err)
		return
	}

	stream := demux.Streams()[0]
	fmt.Printf("Codec: %s\n", stream.Codec)
	fmt.Printf("Sample Rate: %d Hz\n", stream.Format.SampleRate)
	fmt.Printf("Channels: %d\n", stream.Format.Channels)
	// Output:
	// Codec: pcm_s16be
	// Sample Rate: 44100 Hz
	// Channels: 2
}

// Example_errorHandling shows the error for invalid AIFF data.
func Example_errorHandling() {
	_, err := aiff.Container{}.Open(bytes.NewReader([]byte("not an aiff file")))
	fmt.Printf("Error: %v\n", err)
	// Output: Error: aiff: open: i/o error: not an AIFF file
}
