// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/internal/metrics"
	"github.com/ik5/audmix/mixer"
)

// NumChannels is the number of simultaneous playback channels.
const NumChannels = mixer.NumChannels

// Engine ties the sample store, the mixer and an audio device together.
//
// Loading and playback control work with or without an opened device: the
// channels advance only while a device pulls from the mixer.
type Engine struct {
	cfg      Config
	log      *slog.Logger
	store    *mixer.Store
	mixer    *mixer.Mixer
	decoders *codec.Registry
	metrics  *metrics.Metrics

	mu  sync.Mutex
	dev device.Device
}

// New validates cfg and builds an engine without opening the device.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		log:      cfg.logger(),
		store:    mixer.NewStore(),
		mixer:    mixer.New(),
		decoders: defaultDecoders(),
	}

	if cfg.Registerer != nil {
		m, err := metrics.New(cfg.Registerer)
		if err != nil {
			return nil, err
		}
		e.metrics = m
		e.mixer.SetObserver(m)
	}

	return e, nil
}

// Init opens the configured backend and starts pulling audio from the mixer.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dev != nil {
		return ErrAlreadyInitialized
	}

	dev, err := device.Open(e.cfg.Backend, device.Config{
		SampleRate:   e.cfg.SampleRate,
		BufferFrames: e.cfg.BufferFrames,
		Logger:       e.log,
	}, e.mixer.Callback)
	if err != nil {
		return &DeviceError{Backend: e.cfg.Backend, Err: err}
	}

	if err := dev.Start(); err != nil {
		_ = dev.Close()
		return &DeviceError{Backend: e.cfg.Backend, Err: err}
	}

	e.dev = dev
	e.log.Info("audio device started",
		"backend", e.cfg.Backend,
		"sample_rate", e.cfg.SampleRate,
		"buffer_frames", e.cfg.BufferFrames,
		"channels", NumChannels)

	return nil
}

// Shutdown pauses and closes the device, silences every channel and drops
// all samples. It is a no-op on an engine that was never initialized.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dev == nil {
		return nil
	}

	var errs []error
	if err := e.dev.Pause(true); err != nil {
		errs = append(errs, err)
	}
	if err := e.dev.Close(); err != nil {
		errs = append(errs, err)
	}
	e.dev = nil

	e.mixer.StopAll()
	e.store.Release()

	if len(errs) > 0 {
		return &DeviceError{Backend: e.cfg.Backend, Err: errors.Join(errs...)}
	}

	e.log.Info("audio device closed", "backend", e.cfg.Backend)
	return nil
}

// Device returns the opened device, or nil before Init and after Shutdown.
func (e *Engine) Device() device.Device {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.dev
}

// Mixer exposes the underlying mixer, mainly for offline rendering.
func (e *Engine) Mixer() *mixer.Mixer { return e.mixer }

// RegisterDecoder adds or replaces the decoder used for files with the given
// extension.
func (e *Engine) RegisterDecoder(format string, d codec.Decoder) {
	e.decoders.Register(format, d)
}

// LoadSample decodes path, mixes it down to mono and stores it. With trim
// set, trailing silence is dropped. Failures are reported as *DecodeError
// and leave the store unchanged.
func (e *Engine) LoadSample(path string, trim bool) (int, error) {
	format := formatOf(path)

	pcm, err := decodeFile(e.decoders, path)
	if err != nil {
		e.metrics.RecordLoad(format, err)
		e.log.Warn("sample load failed", "path", path, "error", err)
		return 0, &DecodeError{Path: path, Err: err}
	}

	handle, err := e.store.Load(codec.Downmix(pcm), pcm.SampleRate, trim)
	if err != nil {
		e.metrics.RecordLoad(format, err)
		return 0, &DecodeError{Path: path, Err: err}
	}
	e.metrics.RecordLoad(format, nil)

	s, err := e.store.Get(handle)
	if err != nil {
		return 0, err
	}

	e.log.Info("sample loaded",
		"path", path,
		"handle", handle,
		"freq", s.Rate(),
		"samples", s.Len(),
		"seconds", s.Duration().Seconds())

	if s.Rate() != e.cfg.SampleRate {
		e.log.Warn("sample rate differs from output rate; it will play at the output rate",
			"path", path,
			"freq", s.Rate(),
			"output_freq", e.cfg.SampleRate)
	}

	return handle, nil
}

// LoadPCM stores raw mono samples recorded at sampleRate.
func (e *Engine) LoadPCM(raw []int16, sampleRate int, trim bool) (int, error) {
	handle, err := e.store.Load(raw, sampleRate, trim)
	e.metrics.RecordLoad("pcm", err)
	if err != nil {
		return 0, err
	}

	e.log.Debug("pcm loaded",
		"handle", handle,
		"freq", sampleRate,
		"samples", len(raw))

	return handle, nil
}

// Samples returns the number of loaded samples.
func (e *Engine) Samples() int { return e.store.Len() }

// Play starts the sample behind handle on channel ch from its beginning,
// replacing whatever the channel was playing. With loop set it repeats the
// whole sample.
func (e *Engine) Play(handle, ch int, loop bool) error {
	s, err := e.store.Get(handle)
	if err != nil {
		return err
	}
	if err := e.mixer.Play(ch, s, loop); err != nil {
		return err
	}

	mode := metrics.ModeOnce
	if loop {
		mode = metrics.ModeLoop
	}
	e.metrics.RecordPlay(mode)
	e.log.Debug("play", "handle", handle, "channel", ch, "loop", loop)

	return nil
}

// PlayLoop plays the sample behind handle on channel ch, then repeats the
// region between startPos and endPos. Positions are in 1/128 s of the
// sample's own rate.
func (e *Engine) PlayLoop(handle, ch, startPos, endPos int) error {
	s, err := e.store.Get(handle)
	if err != nil {
		return err
	}
	if err := e.mixer.PlayRegion(ch, s, startPos, endPos); err != nil {
		return err
	}

	e.metrics.RecordPlay(metrics.ModeRegion)
	e.log.Debug("play loop",
		"handle", handle,
		"channel", ch,
		"start_pos", startPos,
		"end_pos", endPos)

	return nil
}

// Stop silences channel ch immediately.
func (e *Engine) Stop(ch int) error {
	return e.mixer.Stop(ch)
}

// StopLoop lets channel ch play on to the end of its sample without
// looping again.
func (e *Engine) StopLoop(ch int) error {
	return e.mixer.StopLoop(ch)
}

func (e *Engine) IsPlaying(ch int) (bool, error) {
	return e.mixer.IsPlaying(ch)
}

// Idle reports whether no channel is playing.
func (e *Engine) Idle() bool {
	for ch := range NumChannels {
		if playing, _ := e.mixer.IsPlaying(ch); playing {
			return false
		}
	}
	return true
}
