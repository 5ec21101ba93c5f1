// Package metrics records build latency and timing cache outcomes with Prometheus.
package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildMetrics = (*Recorder)(nil)

// Recorder implements ports.BuildMetrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry
	file     string

	builds   *prometheus.HistogramVec
	lookups  *prometheus.CounterVec
	captures *prometheus.CounterVec
}

// NewRecorder creates a recorder. When file is non-empty, Flush writes the registry there
// in the Prometheus text format.
func NewRecorder(file string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		file:     file,
		builds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "temper_build_duration_seconds",
			Help:    "Compile time of one build, by timing cache usage",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"cache"}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "temper_cache_lookups_total",
			Help: "Timing cache lookups, by outcome",
		}, []string{"outcome"}),
		captures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "temper_cache_captures_total",
			Help: "Timing cache captures, by outcome",
		}, []string{"outcome"}),
	}
}

// Registry returns the registry holding the build metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveLookup counts a cache lookup outcome.
func (r *Recorder) ObserveLookup(outcome domain.LookupOutcome) {
	r.lookups.WithLabelValues(outcome.String()).Inc()
}

// ObserveBuild records the compile time of one build.
func (r *Recorder) ObserveBuild(useCache bool, elapsed time.Duration) {
	r.builds.WithLabelValues(cacheLabel(useCache)).Observe(elapsed.Seconds())
}

// ObserveCapture counts a cache capture outcome.
func (r *Recorder) ObserveCapture(outcome domain.CaptureOutcome) {
	r.captures.WithLabelValues(outcome.String()).Inc()
}

// Flush writes the textfile. It does nothing when no file is configured.
func (r *Recorder) Flush() error {
	if r.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.file), domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrMetricsWriteFailed, err), "path", r.file)
	}
	if err := prometheus.WriteToTextfile(r.file, r.registry); err != nil {
		return zerr.With(errors.Join(domain.ErrMetricsWriteFailed, err), "path", r.file)
	}
	return nil
}

func cacheLabel(useCache bool) string {
	if useCache {
		return "with"
	}
	return "without"
}
