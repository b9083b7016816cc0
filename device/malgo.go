// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gen2brain/malgo"
)

// Malgo plays through miniaudio via github.com/gen2brain/malgo.
type Malgo struct {
	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	dev     *malgo.Device
	started bool
	closed  bool
}

func NewMalgo(cfg Config, cb Callback) (*Malgo, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cb == nil {
		return nil, ErrNilCallback
	}

	log := cfg.logger()

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Debug("malgo", "message", strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("malgo context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = 1
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(cfg.BufferFrames)
	deviceConfig.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutputSample, _ []byte, _ uint32) {
			cb(pOutputSample)
		},
	}

	dev, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("malgo device: %w", err)
	}

	log.Debug("malgo device opened",
		"sample_rate", cfg.SampleRate,
		"buffer_frames", cfg.BufferFrames)

	return &Malgo{ctx: ctx, dev: dev}, nil
}

func (m *Malgo) Start() error {
	return m.Pause(false)
}

func (m *Malgo) Pause(paused bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.started != paused {
		return nil
	}

	var err error
	if paused {
		err = m.dev.Stop()
	} else {
		err = m.dev.Start()
	}
	if err != nil {
		return fmt.Errorf("malgo pause(%t): %w", paused, err)
	}
	m.started = !paused
	return nil
}

func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	m.dev.Uninit()
	err := m.ctx.Uninit()
	m.ctx.Free()
	if err != nil {
		return fmt.Errorf("malgo context uninit: %w", err)
	}
	return nil
}
