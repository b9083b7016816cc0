// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"sync"

	"github.com/ik5/audmix/utils"
)

// NumChannels is the fixed number of playback slots.
const NumChannels = 4

// Observer receives per-callback statistics. It is called from the audio
// goroutine after the gate is released and must not block.
type Observer interface {
	ObserveMix(frames, clipped int)
}

// Mixer owns the channel array and combines it into one mono stream.
//
// mu is the gate between the control goroutines and the audio callback:
// control calls hold it for a constant amount of work, the callback holds it
// for one buffer.
type Mixer struct {
	mu       sync.Mutex
	channels [NumChannels]Channel
	observer Observer
}

func New() *Mixer {
	return &Mixer{}
}

// SetObserver installs o, or removes the current observer when o is nil.
func (m *Mixer) SetObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observer = o
}

// Callback fills stream with signed 16-bit little-endian mono samples. It
// has the shape audio backends expect: len(stream) is in bytes.
func (m *Mixer) Callback(stream []byte) {
	n := len(stream) / 2

	m.mu.Lock()
	clipped := 0
	for i := range n {
		s, clip := m.mixOne()
		if clip {
			clipped++
		}
		binary.LittleEndian.PutUint16(stream[2*i:], uint16(s))
	}
	obs := m.observer
	m.mu.Unlock()

	if len(stream)%2 != 0 {
		stream[len(stream)-1] = 0
	}
	if obs != nil {
		obs.ObserveMix(n, clipped)
	}
}

// Mix is Callback for callers that want int16 samples instead of bytes.
func (m *Mixer) Mix(dst []int16) {
	m.mu.Lock()
	clipped := 0
	for i := range dst {
		s, clip := m.mixOne()
		if clip {
			clipped++
		}
		dst[i] = s
	}
	obs := m.observer
	m.mu.Unlock()

	if obs != nil {
		obs.ObserveMix(len(dst), clipped)
	}
}

// mixOne advances every channel by one sample, halves each contribution and
// saturates the sum. Must be called with mu held.
func (m *Mixer) mixOne() (int16, bool) {
	var sum int32
	for i := range m.channels {
		sum += int32(m.channels[i].Next() / 2)
	}
	out := utils.ClampInt16(sum)
	return out, int32(out) != sum
}
