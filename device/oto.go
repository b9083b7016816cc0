// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process; it is shared by every Oto device.
var (
	otoMu   sync.Mutex
	otoCtx  *oto.Context
	otoRate int
)

func otoContext(cfg Config) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		if otoRate != cfg.SampleRate {
			return nil, fmt.Errorf("%w: open at %d Hz, requested %d Hz", ErrContextRate, otoRate, cfg.SampleRate)
		}
		return otoCtx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(cfg.BufferFrames) * time.Second / time.Duration(cfg.SampleRate),
	})
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready

	otoCtx = ctx
	otoRate = cfg.SampleRate
	return ctx, nil
}

// Oto plays through github.com/ebitengine/oto/v3. oto pulls audio by
// calling Read on its own goroutine; Read forwards straight to the callback.
type Oto struct {
	mu     sync.Mutex
	player *oto.Player
	cb     Callback
	closed atomic.Bool
}

func NewOto(cfg Config, cb Callback) (*Oto, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cb == nil {
		return nil, ErrNilCallback
	}

	ctx, err := otoContext(cfg)
	if err != nil {
		return nil, err
	}

	o := &Oto{cb: cb}
	o.player = ctx.NewPlayer(o)
	o.player.SetBufferSize(cfg.BufferFrames * 2)

	cfg.logger().Debug("oto device opened",
		"sample_rate", cfg.SampleRate,
		"buffer_frames", cfg.BufferFrames)

	return o, nil
}

// Read implements io.Reader for the oto player.
func (o *Oto) Read(p []byte) (int, error) {
	if o.closed.Load() {
		return 0, io.EOF
	}
	o.cb(p)
	return len(p), nil
}

func (o *Oto) Start() error {
	return o.Pause(false)
}

func (o *Oto) Pause(paused bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed.Load() {
		return ErrClosed
	}
	if paused {
		o.player.Pause()
	} else {
		o.player.Play()
	}
	return nil
}

func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed.Swap(true) {
		return nil
	}
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("closing oto player: %w", err)
	}
	return nil
}
