// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Callback fills stream with signed 16-bit little-endian mono samples.
// len(stream) is in bytes.
type Callback func(stream []byte)

// Device is an opened audio output.
type Device interface {
	// Start begins (or resumes) delivering callbacks.
	Start() error
	// Pause stops delivering callbacks when paused is true, and resumes
	// otherwise.
	Pause(paused bool) error
	// Close releases the output. The callback is not invoked afterwards.
	Close() error
}

// Config describes the stream the mixer produces. The format is always mono
// signed 16-bit little-endian.
type Config struct {
	SampleRate   int
	BufferFrames int
	// Logger receives backend diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

func (c Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.BufferFrames <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBufferFrames, c.BufferFrames)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Opener opens a backend.
type Opener func(cfg Config, cb Callback) (Device, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]Opener{
		"null":  func(cfg Config, cb Callback) (Device, error) { return NewNull(cfg, cb) },
		"oto":   func(cfg Config, cb Callback) (Device, error) { return NewOto(cfg, cb) },
		"malgo": func(cfg Config, cb Callback) (Device, error) { return NewMalgo(cfg, cb) },
	}
)

// Register adds or replaces a backend.
func Register(name string, open Opener) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	backends[name] = open
}

// Backends lists the registered backend names, sorted.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open validates cfg and opens the named backend. The device starts paused.
func Open(backend string, cfg Config, cb Callback) (Device, error) {
	if cb == nil {
		return nil, ErrNilCallback
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	backendsMu.RLock()
	open, ok := backends[backend]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	return open(cfg, cb)
}
