// SPDX-License-Identifier: EPL-2.0

// Package intpcm drains go-audio integer decoders into codec.PCM buffers.
package intpcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/utils"
)

// chunkSize is the number of ints requested per PCMBuffer call.
const chunkSize = 4096

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Drain reads every remaining 16-bit sample from r.
func Drain(r Reader, sampleRate, channels int) (*codec.PCM, error) {
	buf := &goaudio.IntBuffer{
		Data:           make([]int, chunkSize),
		Format:         r.Format(),
		SourceBitDepth: 16,
	}

	pcm := &codec.PCM{
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    make([]int16, 0, chunkSize),
	}

	for {
		n, err := r.PCMBuffer(buf)
		for _, v := range buf.Data[:n] {
			pcm.Samples = append(pcm.Samples, utils.ClampInt16(int32(v)))
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading pcm: %w", err)
		}
		if n == 0 || err != nil {
			break
		}
	}

	// Drop a partial trailing frame from a truncated file.
	if channels > 0 {
		pcm.Samples = pcm.Samples[:len(pcm.Samples)-len(pcm.Samples)%channels]
	}

	return pcm, nil
}

// ReadSeeker returns r itself when it can seek, otherwise buffers it in
// memory. go-audio decoders require io.ReadSeeker.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return &memReader{data: data}, nil
}

// memReader implements io.ReadSeeker for in-memory data
type memReader struct {
	data   []byte
	offset int64
}

func (m *memReader) Read(p []byte) (int, error) {
	if m.offset >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.offset:])
	m.offset += int64(n)
	return n, nil
}

func (m *memReader) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = m.offset + offset
	case io.SeekEnd:
		next = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if next < 0 {
		return 0, errors.New("negative position")
	}

	m.offset = next
	return next, nil
}
