// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"

	"github.com/ik5/audmix/mixer"
)

var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrAlreadyInitialized = errors.New("engine already initialized")
	ErrInvalidLoopRegion  = mixer.ErrInvalidLoopRegion
	ErrInvalidSampleRate  = mixer.ErrInvalidSampleRate
)

// BoundsError reports an unknown sample handle or channel index.
type BoundsError = mixer.BoundsError

// DeviceError reports a failure opening or driving the audio output.
type DeviceError struct {
	Backend string
	Err     error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audio device %q: %v", e.Backend, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// DecodeError reports a file that could not be turned into a sample.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
