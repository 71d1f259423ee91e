// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry maps file extensions to containers and codec names to codecs.
type Registry struct {
	demuxers map[string]DemuxerOpener
	muxers   map[string]MuxerFactory
	decoders map[string]DecoderFactory
	encoders map[string]EncoderFactory

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		demuxers: make(map[string]DemuxerOpener),
		muxers:   make(map[string]MuxerFactory),
		decoders: make(map[string]DecoderFactory),
		encoders: make(map[string]EncoderFactory),
		mtx:      &sync.RWMutex{},
	}
}

// normalizeExt accepts "wav", ".wav" or "WAV".
func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ExtOf returns the normalized extension of a path.
func ExtOf(path string) string {
	return normalizeExt(filepath.Ext(path))
}

func (r *Registry) RegisterDemuxer(ext string, o DemuxerOpener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.demuxers[normalizeExt(ext)] = o
}

func (r *Registry) RegisterMuxer(ext string, m MuxerFactory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.muxers[normalizeExt(ext)] = m
}

func (r *Registry) RegisterDecoder(codec string, d DecoderFactory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.decoders[codec] = d
}

func (r *Registry) RegisterEncoder(codec string, e EncoderFactory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[codec] = e
}

func (r *Registry) Demuxer(ext string) (DemuxerOpener, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	o, ok := r.demuxers[normalizeExt(ext)]
	return o, ok
}

func (r *Registry) Muxer(ext string) (MuxerFactory, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	m, ok := r.muxers[normalizeExt(ext)]
	return m, ok
}

func (r *Registry) Decoder(codec string) (DecoderFactory, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.decoders[codec]
	return d, ok
}

func (r *Registry) Encoder(codec string) (EncoderFactory, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	e, ok := r.encoders[codec]
	return e, ok
}

// Extensions lists the registered input and output extensions, sorted.
func (r *Registry) Extensions() (inputs, outputs []string) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	for ext := range r.demuxers {
		inputs = append(inputs, ext)
	}
	for ext := range r.muxers {
		outputs = append(outputs, ext)
	}
	sort.Strings(inputs)
	sort.Strings(outputs)

	return inputs, outputs
}
