// Package metrics counts validation outcomes for node-exporter's textfile
// collector.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/stupside/fingerprint/internal/consistency"
)

// Recorder owns a private registry so several recorders never collide.
type Recorder struct {
	registry *prometheus.Registry

	validations   *prometheus.CounterVec
	issues        *prometheus.CounterVec
	lastValidated prometheus.Gauge
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fingerprint_validations_total",
			Help: "Profile validations by outcome.",
		}, []string{"valid"}),
		issues: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fingerprint_issues_total",
			Help: "Consistency issues reported, by code and level.",
		}, []string{"code", "level"}),
		lastValidated: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fingerprint_last_validation_timestamp_seconds",
			Help: "Unix time of the most recent validation.",
		}),
	}
}

// Observe records one validation report.
func (r *Recorder) Observe(report *consistency.Report) {
	r.validations.WithLabelValues(strconv.FormatBool(report.IsValid)).Inc()
	for _, i := range report.Issues {
		r.issues.WithLabelValues(i.Code, string(i.Level)).Inc()
	}
	r.lastValidated.Set(float64(time.Now().Unix()))
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile atomically writes every metric to path in the text
// exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
