// SPDX-License-Identifier: EPL-2.0

package mixer

import "time"

// Sample is an immutable mono 16-bit buffer. It is shared read-only by every
// channel that plays it.
type Sample struct {
	rate int
	data []int16
}

// NewSample wraps data without copying. The caller must not modify data
// afterwards.
func NewSample(data []int16, rate int) *Sample {
	return &Sample{rate: rate, data: data}
}

// Rate returns the sample rate in Hz.
func (s *Sample) Rate() int { return s.rate }

// Len returns the effective sample count.
func (s *Sample) Len() int { return len(s.data) }

// Data returns the playable samples. Do not modify.
func (s *Sample) Data() []int16 { return s.data }

// Duration returns the playback length at the sample's own rate.
func (s *Sample) Duration() time.Duration {
	if s.rate <= 0 {
		return 0
	}
	return time.Duration(len(s.data)) * time.Second / time.Duration(s.rate)
}

// TrimSilence returns the effective length of data once trailing zero
// samples are dropped: the index of the last non-zero sample plus one, or
// zero for an all-silent buffer.
func TrimSilence(data []int16) int {
	for n := len(data); n > 0; n-- {
		if data[n-1] != 0 {
			return n
		}
	}
	return 0
}
