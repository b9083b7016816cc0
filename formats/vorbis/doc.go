// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into *codec.PCM using
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to float32; samples are converted with
// utils.Float32ToInt16, which clamps anything outside [-1, 1].
//
//	pcm, err := vorbis.Decoder{}.Decode(file)
//
// The channel count is whatever the stream declares.
package vorbis
