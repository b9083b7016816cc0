// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/formats/internal/intpcm"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*codec.PCM, error) {
	rs, err := intpcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	// Check bit depth - only support 16-bit for now
	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil || format.NumChannels == 0 || format.SampleRate == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	pcm, err := intpcm.Drain(dec, format.SampleRate, format.NumChannels)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return pcm, nil
}
