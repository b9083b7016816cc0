// SPDX-License-Identifier: EPL-2.0

// Package metrics holds the Prometheus counters exported by the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Play modes used as the "mode" label of audmix_play_total.
const (
	ModeOnce   = "once"
	ModeLoop   = "loop"
	ModeRegion = "region"
)

// Metrics is a prometheus.Collector for sample loading, playback and mixing.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	samplesLoaded  *prometheus.CounterVec
	loadErrors     *prometheus.CounterVec
	plays          *prometheus.CounterVec
	mixedFrames    prometheus.Counter
	clippedSamples prometheus.Counter

	collectors []prometheus.Collector
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{}
	m.init()
	if err := reg.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) init() {
	m.samplesLoaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audmix_samples_loaded_total",
			Help: "Total number of samples inserted into the store",
		},
		[]string{"format"},
	)

	m.loadErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audmix_load_errors_total",
			Help: "Total number of failed sample loads",
		},
		[]string{"format"},
	)

	m.plays = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audmix_play_total",
			Help: "Total number of successful play requests",
		},
		[]string{"mode"},
	)

	m.mixedFrames = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audmix_mixed_frames_total",
			Help: "Total number of output frames produced by the mixer",
		},
	)

	m.clippedSamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audmix_clipped_samples_total",
			Help: "Total number of output frames saturated to the int16 range",
		},
	)

	m.collectors = []prometheus.Collector{
		m.samplesLoaded,
		m.loadErrors,
		m.plays,
		m.mixedFrames,
		m.clippedSamples,
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors {
		c.Describe(ch)
	}
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors {
		c.Collect(ch)
	}
}

// RecordLoad counts a sample load. format is the file extension, or "pcm"
// for raw loads.
func (m *Metrics) RecordLoad(format string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.loadErrors.WithLabelValues(format).Inc()
		return
	}
	m.samplesLoaded.WithLabelValues(format).Inc()
}

func (m *Metrics) RecordPlay(mode string) {
	if m == nil {
		return
	}
	m.plays.WithLabelValues(mode).Inc()
}

// ObserveMix implements mixer.Observer.
func (m *Metrics) ObserveMix(frames, clipped int) {
	if m == nil {
		return
	}
	m.mixedFrames.Add(float64(frames))
	if clipped > 0 {
		m.clippedSamples.Add(float64(clipped))
	}
}
