// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"

	"github.com/ik5/audmix/codec"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errBrokenBackend = errors.New("no sound card")

func init() {
	device.Register("broken", func(device.Config, device.Callback) (device.Device, error) {
		return nil, errBrokenBackend
	})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func nullConfig() Config {
	cfg := DefaultConfig()
	cfg.Backend = "null"
	cfg.SampleRate = 8000
	cfg.BufferFrames = 8
	cfg.Logger = quietLogger()
	return cfg
}

// newNullEngine returns an initialized engine on the null backend.
func newNullEngine(t *testing.T, cfg Config) (*Engine, *device.Null) {
	t.Helper()

	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := eng.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() {
		if err := eng.Shutdown(); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	})

	n, ok := eng.Device().(*device.Null)
	if !ok {
		t.Fatalf("Device() = %T, want *device.Null", eng.Device())
	}
	return eng, n
}

// pull runs one device buffer through the mixer.
func pull(t *testing.T, n *device.Null) []int16 {
	t.Helper()

	buf := make([]byte, n.BufferBytes())
	if !n.Pull(buf) {
		t.Fatal("Pull() did not run the callback")
	}
	return utils.Int16sFromLE(buf)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.SampleRate != 22050 || cfg.BufferFrames != 2048 || cfg.Backend != "oto" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rate", func(c *Config) { c.SampleRate = 0 }},
		{"negative buffer", func(c *Config) { c.BufferFrames = -1 }},
		{"unknown backend", func(c *Config) { c.Backend = "sdl" }},
		{"empty backend", func(c *Config) { c.Backend = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := nullConfig()
			tt.mutate(&cfg)

			if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestEngine_Lifecycle(t *testing.T) {
	t.Parallel()

	eng, err := New(nullConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := eng.Shutdown(); err != nil {
		t.Errorf("Shutdown() before Init error = %v", err)
	}
	if eng.Device() != nil {
		t.Error("Device() before Init is not nil")
	}

	if err := eng.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := eng.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init() error = %v, want %v", err, ErrAlreadyInitialized)
	}

	h, err := eng.LoadPCM([]int16{1, 2, 3}, 8000, false)
	if err != nil {
		t.Fatalf("LoadPCM() error = %v", err)
	}
	if err := eng.Play(h, 0, true); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if err := eng.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if eng.Device() != nil {
		t.Error("Device() after Shutdown is not nil")
	}
	if eng.Samples() != 0 {
		t.Errorf("Samples() after Shutdown = %d, want 0", eng.Samples())
	}
	if !eng.Idle() {
		t.Error("channels still playing after Shutdown")
	}
	if err := eng.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}

	// The engine can be brought back up.
	if err := eng.Init(); err != nil {
		t.Fatalf("Init() after Shutdown error = %v", err)
	}
	if err := eng.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
}

func TestEngine_InitDeviceError(t *testing.T) {
	t.Parallel()

	cfg := nullConfig()
	cfg.Backend = "broken"

	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = eng.Init()
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Fatalf("Init() error = %v, want *DeviceError", err)
	}
	if devErr.Backend != "broken" {
		t.Errorf("DeviceError.Backend = %q, want broken", devErr.Backend)
	}
	if !errors.Is(err, errBrokenBackend) {
		t.Errorf("Init() error does not wrap %v", errBrokenBackend)
	}
	if eng.Device() != nil {
		t.Error("Device() set after failed Init")
	}
}

func TestEngine_LoadSampleAndPlay(t *testing.T) {
	t.Parallel()

	eng, n := newNullEngine(t, nullConfig())

	// Stereo frames average to 1000, 2000, ... once mixed down.
	pcm := audiotest.NewPCM(8000, 2, 4, func(f, c int) int16 {
		if c == 0 {
			return int16(f+1) * 1500
		}
		return int16(f+1) * 500
	})
	path := audiotest.WriteWAV(t, "tone.WAV", pcm)

	h, err := eng.LoadSample(path, false)
	if err != nil {
		t.Fatalf("LoadSample() error = %v", err)
	}
	if err := eng.Play(h, 3, false); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	got := pull(t, n)
	want := []int16{500, 1000, 1500, 2000, 0, 0, 0, 0}
	if !slices.Equal(got, want) {
		t.Errorf("mixed = %v, want %v", got, want)
	}

	if playing, err := eng.IsPlaying(3); err != nil || playing {
		t.Errorf("IsPlaying(3) = %t, %v; want false, nil", playing, err)
	}
}

func TestEngine_LoadSampleTrim(t *testing.T) {
	t.Parallel()

	eng, n := newNullEngine(t, nullConfig())

	pcm := &codec.PCM{SampleRate: 8000, Channels: 1, Samples: []int16{4, 0, 6, 0, 0, 0}}
	path := audiotest.WriteWAV(t, "trim.wav", pcm)

	h, err := eng.LoadSample(path, true)
	if err != nil {
		t.Fatalf("LoadSample() error = %v", err)
	}
	if err := eng.Play(h, 0, true); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	got := pull(t, n)
	want := []int16{2, 0, 3, 2, 0, 3, 2, 0}
	if !slices.Equal(got, want) {
		t.Errorf("mixed = %v, want %v", got, want)
	}
}

func TestEngine_LoadSampleErrors(t *testing.T) {
	t.Parallel()

	decodeFailure := errors.New("corrupt stream")

	eng, err := New(nullConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	eng.RegisterDecoder("bad", &audiotest.Decoder{Err: decodeFailure})
	eng.RegisterDecoder("odd", &audiotest.Decoder{
		PCM: &codec.PCM{SampleRate: 8000, Channels: 2, Samples: []int16{1, 2, 3}},
	})

	tests := []struct {
		name string
		path string
		want error
	}{
		{"unknown extension", audiotest.WriteFile(t, "x.flac", []byte("fLaC")), codec.ErrUnknownFormat},
		{"no extension", audiotest.WriteFile(t, "noext", []byte{1}), codec.ErrUnknownFormat},
		{"missing file", "/nonexistent/dir/x.wav", fs.ErrNotExist},
		{"decoder failure", audiotest.WriteFile(t, "x.bad", []byte{1}), decodeFailure},
		{"partial frame", audiotest.WriteFile(t, "x.odd", []byte{1}), codec.ErrPartialFrame},
		{"not a wav", audiotest.WriteFile(t, "x.wav", []byte("not audio")), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.LoadSample(tt.path, false)

			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("LoadSample() error = %v, want *DecodeError", err)
			}
			if decErr.Path != tt.path {
				t.Errorf("DecodeError.Path = %q, want %q", decErr.Path, tt.path)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("LoadSample() error = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q does not name the path", err)
			}
		})
	}

	if eng.Samples() != 0 {
		t.Errorf("Samples() = %d after failed loads, want 0", eng.Samples())
	}
}

func TestEngine_LoadPCMErrors(t *testing.T) {
	t.Parallel()

	eng, err := New(nullConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := eng.LoadPCM([]int16{1}, 0, false); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("LoadPCM(rate 0) error = %v, want %v", err, ErrInvalidSampleRate)
	}
	if eng.Samples() != 0 {
		t.Errorf("Samples() = %d, want 0", eng.Samples())
	}
}

func TestEngine_BoundsErrors(t *testing.T) {
	t.Parallel()

	eng, err := New(nullConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h, err := eng.LoadPCM([]int16{1, 2}, 8000, false)
	if err != nil {
		t.Fatalf("LoadPCM() error = %v", err)
	}

	tests := []struct {
		name string
		call func() error
		kind string
	}{
		{"play bad handle", func() error { return eng.Play(h+1, 0, false) }, "handle"},
		{"play negative handle", func() error { return eng.Play(-1, 0, false) }, "handle"},
		{"play bad channel", func() error { return eng.Play(h, NumChannels, false) }, "channel"},
		{"loop bad handle", func() error { return eng.PlayLoop(7, 0, 0, 1) }, "handle"},
		{"loop bad channel", func() error { return eng.PlayLoop(h, -1, 0, 1) }, "channel"},
		{"stop bad channel", func() error { return eng.Stop(4) }, "channel"},
		{"stop loop bad channel", func() error { return eng.StopLoop(9) }, "channel"},
		{"is playing bad channel", func() error { _, err := eng.IsPlaying(-2); return err }, "channel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var boundsErr *BoundsError
			if err := tt.call(); !errors.As(err, &boundsErr) {
				t.Fatalf("error = %v, want *BoundsError", err)
			}
			if boundsErr.Kind != tt.kind {
				t.Errorf("BoundsError.Kind = %q, want %q", boundsErr.Kind, tt.kind)
			}
		})
	}

	if !eng.Idle() {
		t.Error("a failed call started a channel")
	}
}

func TestEngine_LoopRegionAndStopLoop(t *testing.T) {
	t.Parallel()

	cfg := nullConfig()
	cfg.BufferFrames = 6
	eng, n := newNullEngine(t, cfg)

	// At 128 Hz a position unit is exactly one sample.
	h, err := eng.LoadPCM([]int16{2, 4, 6, 8}, 128, false)
	if err != nil {
		t.Fatalf("LoadPCM() error = %v", err)
	}

	if err := eng.PlayLoop(h, 1, 3, 1); !errors.Is(err, ErrInvalidLoopRegion) {
		t.Errorf("PlayLoop(start > end) error = %v, want %v", err, ErrInvalidLoopRegion)
	}
	if !eng.Idle() {
		t.Fatal("rejected PlayLoop started the channel")
	}

	if err := eng.PlayLoop(h, 1, 1, 3); err != nil {
		t.Fatalf("PlayLoop() error = %v", err)
	}
	if got, want := pull(t, n), []int16{1, 2, 3, 2, 3, 2}; !slices.Equal(got, want) {
		t.Errorf("looping = %v, want %v", got, want)
	}

	if err := eng.StopLoop(1); err != nil {
		t.Fatalf("StopLoop() error = %v", err)
	}
	if got, want := pull(t, n), []int16{3, 4, 0, 0, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("after StopLoop = %v, want %v", got, want)
	}
	if playing, _ := eng.IsPlaying(1); playing {
		t.Error("channel still playing after running off the end")
	}
}

func TestEngine_StopIsImmediate(t *testing.T) {
	t.Parallel()

	eng, n := newNullEngine(t, nullConfig())

	h, err := eng.LoadPCM([]int16{100, 100, 100}, 8000, false)
	if err != nil {
		t.Fatalf("LoadPCM() error = %v", err)
	}
	if err := eng.Play(h, 2, true); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if playing, _ := eng.IsPlaying(2); !playing {
		t.Fatal("IsPlaying(2) = false after Play")
	}

	if err := eng.Stop(2); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if got := pull(t, n); slices.ContainsFunc(got, func(s int16) bool { return s != 0 }) {
		t.Errorf("output after Stop = %v, want silence", got)
	}
}

func TestEngine_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	cfg := nullConfig()
	cfg.Registerer = reg
	eng, n := newNullEngine(t, cfg)

	h, err := eng.LoadPCM([]int16{32767, 32767, 32767}, 8000, false)
	if err != nil {
		t.Fatalf("LoadPCM() error = %v", err)
	}
	for ch := range NumChannels {
		if err := eng.Play(h, ch, ch%2 == 0); err != nil {
			t.Fatalf("Play(%d) error = %v", ch, err)
		}
	}
	if err := eng.PlayLoop(h, 0, 0, 1); err != nil {
		t.Fatalf("PlayLoop() error = %v", err)
	}
	if _, err := eng.LoadSample("missing.mp3", false); err == nil {
		t.Fatal("LoadSample(missing) succeeded")
	}

	pull(t, n)

	// Each channel contributes 16383. All four play for the first three
	// frames and saturate; afterwards only the two looping channels remain.
	expected := `
# HELP audmix_clipped_samples_total Total number of output frames saturated to the int16 range
# TYPE audmix_clipped_samples_total counter
audmix_clipped_samples_total 3
# HELP audmix_load_errors_total Total number of failed sample loads
# TYPE audmix_load_errors_total counter
audmix_load_errors_total{format="mp3"} 1
# HELP audmix_mixed_frames_total Total number of output frames produced by the mixer
# TYPE audmix_mixed_frames_total counter
audmix_mixed_frames_total 8
# HELP audmix_play_total Total number of successful play requests
# TYPE audmix_play_total counter
audmix_play_total{mode="loop"} 2
audmix_play_total{mode="once"} 2
audmix_play_total{mode="region"} 1
# HELP audmix_samples_loaded_total Total number of samples inserted into the store
# TYPE audmix_samples_loaded_total counter
audmix_samples_loaded_total{format="pcm"} 1
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"audmix_clipped_samples_total",
		"audmix_load_errors_total",
		"audmix_mixed_frames_total",
		"audmix_play_total",
		"audmix_samples_loaded_total",
	)
	if err != nil {
		t.Error(err)
	}
}

func TestEngine_ConcurrentControlAndPull(t *testing.T) {
	t.Parallel()

	eng, n := newNullEngine(t, nullConfig())

	h, err := eng.LoadPCM(audiotest.Ramp(64), 8000, false)
	if err != nil {
		t.Fatalf("LoadPCM() error = %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Go(func() {
		buf := make([]byte, n.BufferBytes())
		for {
			select {
			case <-done:
				return
			default:
				n.Pull(buf)
			}
		}
	})

	for i := range 500 {
		ch := i % NumChannels
		switch i % 5 {
		case 0:
			_ = eng.Play(h, ch, true)
		case 1:
			_ = eng.PlayLoop(h, ch, 0, 32)
		case 2:
			_ = eng.StopLoop(ch)
		case 3:
			_ = eng.Stop(ch)
		default:
			_, _ = eng.IsPlaying(ch)
			_, _ = eng.LoadPCM(audiotest.Ramp(8), 8000, true)
		}
	}

	close(done)
	wg.Wait()
}
