// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates PCM and fake decoders for tests.
package audiotest

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/formats/wav"
)

// NewPCM builds interleaved PCM from a waveform called once per
// (frame, channel) pair.
func NewPCM(sampleRate, channels, frames int, waveform func(frame, channel int) int16) *codec.PCM {
	samples := make([]int16, frames*channels)
	for f := range frames {
		for c := range channels {
			samples[f*channels+c] = waveform(f, c)
		}
	}
	return &codec.PCM{SampleRate: sampleRate, Channels: channels, Samples: samples}
}

// Constant is PCM where every sample equals v.
func Constant(sampleRate, channels, frames int, v int16) *codec.PCM {
	return NewPCM(sampleRate, channels, frames, func(int, int) int16 { return v })
}

// Sine is a sine tone at freq Hz with peak amplitude amp, identical on
// every channel.
func Sine(sampleRate, channels, frames int, freq float64, amp int16) *codec.PCM {
	return NewPCM(sampleRate, channels, frames, func(f, _ int) int16 {
		t := float64(f) / float64(sampleRate)
		return int16(math.Round(float64(amp) * math.Sin(2*math.Pi*freq*t)))
	})
}

// Ramp returns 1, 2, ..., n.
func Ramp(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i + 1)
	}
	return out
}

// WAVBytes encodes pcm as a 16-bit WAV file.
func WAVBytes(tb testing.TB, pcm *codec.PCM) []byte {
	tb.Helper()

	var buf bytes.Buffer
	if err := wav.Encode(&buf, pcm); err != nil {
		tb.Fatalf("wav.Encode() error = %v", err)
	}
	return buf.Bytes()
}

// WriteFile writes data to name inside a per-test temporary directory and
// returns the full path.
func WriteFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// WriteWAV encodes pcm into a temporary WAV file and returns its path.
func WriteWAV(tb testing.TB, name string, pcm *codec.PCM) string {
	tb.Helper()

	return WriteFile(tb, name, WAVBytes(tb, pcm))
}

// Decoder is a codec.Decoder that ignores its input and returns PCM or Err.
type Decoder struct {
	PCM *codec.PCM
	Err error
	// Calls counts Decode invocations.
	Calls int
}

func (d *Decoder) Decode(r io.Reader) (*codec.PCM, error) {
	d.Calls++
	if d.Err != nil {
		return nil, d.Err
	}
	return d.PCM, nil
}
