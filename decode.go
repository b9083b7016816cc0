// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
)

func defaultDecoders() *codec.Registry {
	reg := codec.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

// formatOf is the lower case extension of path without the dot.
func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// decodeFile picks a decoder by extension and decodes path.
func decodeFile(reg *codec.Registry, path string) (*codec.PCM, error) {
	format := formatOf(path)
	dec, ok := reg.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", codec.ErrUnknownFormat, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pcm, err := dec.Decode(f)
	if err != nil {
		return nil, err
	}
	if err := pcm.Validate(); err != nil {
		return nil, fmt.Errorf("decoder returned invalid pcm: %w", err)
	}
	return pcm, nil
}
