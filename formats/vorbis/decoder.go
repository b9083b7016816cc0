// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/utils"
	"github.com/jfreymuth/oggvorbis"
)

// readAllFunc matches oggvorbis.ReadAll to allow testing
type readAllFunc func(io.Reader) ([]float32, *oggvorbis.Format, error)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*codec.PCM, error) {
	return decodeWith(oggvorbis.ReadAll, r)
}

func decodeWith(readAll readAllFunc, r io.Reader) (*codec.PCM, error) {
	data, format, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisStream, err)
	}
	if format == nil || format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, ErrUnsupportedVorbisLayout
	}

	// oggvorbis yields interleaved float32 in [-1, 1]
	frames := len(data) / format.Channels
	samples := make([]int16, frames*format.Channels)
	utils.Float32sToInt16(samples, data)

	return &codec.PCM{
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		Samples:    samples,
	}, nil
}
