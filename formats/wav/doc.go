// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV decoding and encoding for 16-bit PCM.
//
// Decoding is delegated to github.com/go-audio/wav, which walks the RIFF
// chunk list, so files with LIST or fact chunks before the data chunk load
// fine. The decoded file is returned as a *codec.PCM:
//
//	pcm, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not a RIFF/WAVE stream
//	}
//
// go-audio needs an io.ReadSeeker; any other reader is buffered in memory
// first.
//
// # Writing WAV Files
//
// Encode streams a canonical 44-byte header followed by the samples, so the
// destination does not need to seek:
//
//	err := wav.Encode(out, pcm)
//	err = wav.WriteWAV16(out, 22050, monoSamples)
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a valid WAV file
//   - ErrOnlyPCM16bitSupported: compressed or non 16-bit audio
//   - ErrUnsupportedWavLayout: zero channels or zero sample rate
//   - ErrUnsupportedWavChunks: the data chunk could not be read
package wav
