// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	ErrEmptyPCM          = errors.New("pcm buffer is nil")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrPartialFrame      = errors.New("sample count must be multiple of channels")
	ErrUnknownFormat     = errors.New("no decoder registered for format")
)
