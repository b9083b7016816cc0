// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"
	"strings"
	"sync"
	"time"
)

// PCM is a fully decoded, interleaved signed 16-bit buffer.
type PCM struct {
	// SampleRate in Hz.
	SampleRate int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
	// Samples holds interleaved frames: len(Samples) == Frames() * Channels.
	Samples []int16
}

// Frames returns the number of complete frames in the buffer.
func (p *PCM) Frames() int {
	if p == nil || p.Channels <= 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// Duration returns the playback length of the buffer.
func (p *PCM) Duration() time.Duration {
	if p == nil || p.SampleRate <= 0 {
		return 0
	}
	return time.Duration(p.Frames()) * time.Second / time.Duration(p.SampleRate)
}

// Validate reports whether the buffer describes a usable stream.
func (p *PCM) Validate() error {
	if p == nil {
		return ErrEmptyPCM
	}
	if p.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if p.Channels <= 0 {
		return ErrInvalidChannels
	}
	if len(p.Samples)%p.Channels != 0 {
		return ErrPartialFrame
	}
	return nil
}

// Decoder turns an encoded stream into a PCM buffer.
type Decoder interface {
	Decode(r io.Reader) (*PCM, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (*PCM, error)

func (f DecoderFunc) Decode(r io.Reader) (*PCM, error) { return f(r) }

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Keys are case-insensitive.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.RWMutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

// Formats returns the registered format keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	formats := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		formats = append(formats, k)
	}
	return formats
}

// normalizeFormat accepts both "wav" and ".WAV".
func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
