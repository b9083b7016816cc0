// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/formats/internal/intpcm"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag of the fmt chunk.
const wavFormatPCM = 1

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*codec.PCM, error) {
	rs, err := intpcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != wavFormatPCM || dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	pcm, err := intpcm.Drain(dec, int(dec.SampleRate), int(dec.NumChans))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	return pcm, nil
}
