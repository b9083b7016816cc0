// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ik5/audmix/device"
)

const (
	DefaultSampleRate   = 22050
	DefaultBufferFrames = 2048
	DefaultBackend      = "oto"
)

// Config configures an Engine.
type Config struct {
	// SampleRate is the output rate in Hz. Samples are played at this rate
	// whatever rate they were loaded with.
	SampleRate int
	// BufferFrames is the device buffer size in frames.
	BufferFrames int
	// Backend names a device backend, see device.Backends.
	Backend string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Registerer, when set, receives the engine's Prometheus collectors.
	Registerer prometheus.Registerer
}

func DefaultConfig() Config {
	return Config{
		SampleRate:   DefaultSampleRate,
		BufferFrames: DefaultBufferFrames,
		Backend:      DefaultBackend,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.BufferFrames <= 0 {
		return fmt.Errorf("%w: buffer frames %d", ErrInvalidConfig, c.BufferFrames)
	}
	if !slices.Contains(device.Backends(), c.Backend) {
		return fmt.Errorf("%w: backend %q (have %v)", ErrInvalidConfig, c.Backend, device.Backends())
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	l := c.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With(slog.String("module", "audmix"))
}
