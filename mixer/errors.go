// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrNoSample          = errors.New("no sample assigned")
	ErrInvalidLoopRegion = errors.New("loop start is after loop end")
)

// BoundsError reports a handle or channel index outside its valid range.
type BoundsError struct {
	// Kind is "handle" or "channel".
	Kind  string
	Index int
	// Limit is the exclusive upper bound that was violated.
	Limit int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s %d out of range [0, %d)", e.Kind, e.Index, e.Limit)
}

func checkIndex(kind string, index, limit int) error {
	if index < 0 || index >= limit {
		return &BoundsError{Kind: kind, Index: index, Limit: limit}
	}
	return nil
}
