// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"sync"
	"sync/atomic"
)

// Store owns loaded samples. It is append-only: a handle is the index the
// sample was inserted at and stays valid until Release.
//
// Appends are serialized by a mutex and publish a fresh slice, so Get never
// locks.
type Store struct {
	mu      sync.Mutex
	samples atomic.Pointer[[]*Sample]
}

func NewStore() *Store {
	s := &Store{}
	s.samples.Store(&[]*Sample{})
	return s
}

// Load inserts raw as a new sample and returns its handle. With trim set,
// trailing silence is cut by reslicing; the backing array is not copied.
func (s *Store) Load(raw []int16, sampleRate int, trim bool) (int, error) {
	if sampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}
	if trim {
		raw = raw[:TrimSilence(raw)]
	}
	return s.Add(NewSample(raw, sampleRate)), nil
}

// Add appends an already built sample and returns its handle.
func (s *Store) Add(sample *Sample) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := *s.samples.Load()
	next := make([]*Sample, len(old), len(old)+1)
	copy(next, old)
	next = append(next, sample)
	s.samples.Store(&next)

	return len(next) - 1
}

// Get returns the sample behind handle.
func (s *Store) Get(handle int) (*Sample, error) {
	samples := *s.samples.Load()
	if err := checkIndex("handle", handle, len(samples)); err != nil {
		return nil, err
	}
	return samples[handle], nil
}

// Len returns the number of loaded samples.
func (s *Store) Len() int {
	return len(*s.samples.Load())
}

// Release drops every sample. Outstanding handles become invalid; channels
// still pointing at a sample keep it alive until they are reassigned.
func (s *Store) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples.Store(&[]*Sample{})
}
