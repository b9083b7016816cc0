// SPDX-License-Identifier: EPL-2.0

package device

import "sync"

// Null is a device without hardware. Callbacks happen only when Pull is
// called, which makes it suitable for offline rendering and tests.
type Null struct {
	mu      sync.Mutex
	cfg     Config
	cb      Callback
	started bool
	paused  bool
	closed  bool
}

func NewNull(cfg Config, cb Callback) (*Null, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cb == nil {
		return nil, ErrNilCallback
	}
	return &Null{cfg: cfg, cb: cb}, nil
}

func (n *Null) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrClosed
	}
	n.started = true
	n.paused = false
	return nil
}

func (n *Null) Pause(paused bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrClosed
	}
	n.paused = paused
	return nil
}

func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	return nil
}

// Pull runs the callback over stream as the hardware would and reports
// whether it ran. A paused, unstarted or closed device leaves stream as
// silence.
func (n *Null) Pull(stream []byte) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.started || n.paused || n.closed {
		clear(stream)
		return false
	}
	n.cb(stream)
	return true
}

// BufferBytes is the size of one hardware-sized buffer.
func (n *Null) BufferBytes() int {
	return n.cfg.BufferFrames * 2
}
