// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	ErrNotMP3File        = errors.New("not an MP3 stream")
	ErrInvalidSampleRate = errors.New("mp3 stream reports no sample rate")
)
