// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrUnknownBackend      = errors.New("unknown audio backend")
	ErrNilCallback         = errors.New("callback is nil")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrInvalidBufferFrames = errors.New("buffer frames must be positive")
	ErrClosed              = errors.New("device is closed")
	ErrContextRate         = errors.New("oto context already open at a different sample rate")
)
