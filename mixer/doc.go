// SPDX-License-Identifier: EPL-2.0

// Package mixer is the real-time core: a store of mono samples, a fixed
// array of NumChannels playback channels, and the callback that mixes them
// into a single signed 16-bit stream.
//
// # Channels
//
// Each channel is a cursor over one Sample. Playing a sample on a channel
// always replaces what was there and restarts from the first sample. A
// looping channel wraps from its loop end back to its loop start; StopLoop
// lets it run on to the end of the sample, and Stop silences it at once.
//
// Loop points are given in 1/128 s (see PositionToIndex) so callers do not
// need to know the sample rate.
//
// # Mixing
//
// For every output sample each channel is advanced in index order, its
// value is halved, and the halves are summed in 32 bits and saturated to
// the int16 range. Four full-scale channels therefore clip; the fixed
// attenuation is kept for output compatibility.
//
//	m := mixer.New()
//	store := mixer.NewStore()
//	h, _ := store.Load(samples, 22050, true)
//	s, _ := store.Get(h)
//	_ = m.Play(0, s, false)
//	m.Callback(deviceBuffer) // from the audio goroutine
//
// # Concurrency
//
// Control methods and Callback share one mutex. Control methods hold it
// only to copy or flip channel state; Callback holds it for one buffer and
// does no allocation inside the per-sample loop. Store reads are lock-free.
package mixer
