// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF files into *codec.PCM using
// github.com/go-audio/aiff.
//
//	pcm, err := aiff.Decoder{}.Decode(file)
//
// Other bit depths and AIFF-C compression are rejected with
// ErrOnlyPCM16bitSupported. Like the wav decoder, non-seekable readers are
// buffered in memory because go-audio requires io.ReadSeeker.
package aiff
