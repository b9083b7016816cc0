// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audmix/codec"
)

// headerSize is the canonical RIFF + fmt + data header length.
const headerSize = 44

// Encode writes pcm as a 16-bit PCM WAV file.
// The output is streamed, so w does not need to seek.
func Encode(w io.Writer, pcm *codec.PCM) error {
	if err := pcm.Validate(); err != nil {
		return fmt.Errorf("%w", err)
	}

	numChannels := uint16(pcm.Channels)
	bitsPerSample := uint16(16)
	byteRate := uint32(pcm.SampleRate) * uint32(numChannels) * uint32(bitsPerSample/8)
	blockAlign := numChannels * (bitsPerSample / 8)
	dataSize := uint32(len(pcm.Samples) * 2)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(pcm.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSize = 8192 // samples per write
	if len(pcm.Samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(pcm.Samples), chunkSize)*2)
	for i := 0; i < len(pcm.Samples); i += chunkSize {
		chunk := pcm.Samples[i:min(i+chunkSize, len(pcm.Samples))]
		out := buf[:len(chunk)*2]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteWAV16 writes mono 16-bit PCM at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	return Encode(w, &codec.PCM{SampleRate: sampleRate, Channels: 1, Samples: samples})
}
