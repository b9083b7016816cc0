// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into *codec.PCM using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved stereo 16-bit samples, even for mono
// files, so the returned buffer has two channels. Use codec.Downmix to get
// the mono buffer the mixer plays.
//
//	pcm, err := mp3.Decoder{}.Decode(file)
//	mono := codec.Downmix(pcm)
//
// The whole stream is decoded up front; sound effects are short and the
// mixer needs random access for loop points.
package mp3
