// SPDX-License-Identifier: EPL-2.0

// Package audmix is a small real-time mixer for sound effects.
//
// Decoded samples are kept in memory and played on one of four channels. An
// audio device pulls mono signed 16-bit audio from the mixer, which advances
// every channel by one sample per output frame, halves each contribution and
// saturates the sum to the int16 range.
//
// # Supported Formats
//
// LoadSample picks a decoder by file extension:
//   - WAV (PCM 16-bit) via formats/wav
//   - AIFF (PCM 16-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Multi-channel sources are mixed down to mono. Samples are not resampled:
// they play at the engine's output rate.
//
// # Quick Start
//
//	eng, err := audmix.New(audmix.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if err := eng.Init(); err != nil {
//		return err
//	}
//	defer eng.Shutdown()
//
//	h, err := eng.LoadSample("laser.wav", true)
//	if err != nil {
//		return err
//	}
//	_ = eng.Play(h, 0, false)
//
// # Looping
//
// PlayLoop plays a sample from its start and then repeats a region given in
// 1/128 s. StopLoop lets the channel finish the sample; Stop silences it at
// once.
//
// # Backends
//
// Config.Backend selects the device: "oto" (default), "malgo", or "null" for
// rendering without hardware.
package audmix
