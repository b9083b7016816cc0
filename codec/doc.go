// SPDX-License-Identifier: EPL-2.0

// Package codec provides the decoded-audio primitives shared by the format
// decoders and the mixer.
//
// # PCM
//
// Every decoder produces a *PCM: interleaved signed 16-bit samples plus the
// sample rate and channel count.
//
//	pcm, err := wav.Decoder{}.Decode(file)
//	mono := codec.Downmix(pcm)
//
// # Downmix
//
// The mixer plays mono buffers only. Downmix averages each interleaved frame;
// mono input is returned without copying. There is no resampling: a buffer
// keeps the rate it was recorded at.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := codec.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Get(".WAV")
//
// Keys are case-insensitive and a leading dot is ignored, so the output of
// filepath.Ext can be passed directly.
//
// # Error Handling
//
// Validation failures are reported with the sentinel errors in this package
// and can be matched with errors.Is.
package codec
