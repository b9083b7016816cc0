// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/utils"
)

// outputChannels is fixed: go-mp3 always emits interleaved stereo.
const outputChannels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*codec.PCM, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return readAll(dec)
}

func readAll(dec mp3Reader) (*codec.PCM, error) {
	if dec.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}

	// go-mp3 returns 16-bit little-endian PCM bytes
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3 frames: %w", err)
	}

	samples := utils.Int16sFromLE(data)
	samples = samples[:len(samples)-len(samples)%outputChannels]

	return &codec.PCM{
		SampleRate: dec.SampleRate(),
		Channels:   outputChannels,
		Samples:    samples,
	}, nil
}
