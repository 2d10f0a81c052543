package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictionRuns    *prometheus.CounterVec
	upstreamLatency   *prometheus.HistogramVec
	reportsServed     *prometheus.CounterVec
	alertsSynthesized prometheus.Histogram
	errorsTotal       *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictionRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizpulse_prediction_runs_total",
				Help: "Prediction pipeline runs by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		upstreamLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bizpulse_upstream_duration_seconds",
				Help:    "Latency of prediction service calls in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"endpoint"},
		),
		reportsServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizpulse_reports_served_total",
				Help: "Report requests served by report and cache state",
			},
			[]string{"report", "cache"},
		),
		alertsSynthesized: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bizpulse_alerts_synthesized",
				Help:    "Alert count produced per synthesis pass",
				Buckets: []float64{0, 1, 2, 3},
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordPredictionRun records one pipeline run with its outcome.
func (r *Recorder) RecordPredictionRun(kind, outcome string) {
	r.predictionRuns.WithLabelValues(kind, outcome).Inc()
}

// RecordUpstreamLatency records a prediction service call duration.
func (r *Recorder) RecordUpstreamLatency(endpoint string, seconds float64) {
	r.upstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordReportServed records one served report request.
func (r *Recorder) RecordReportServed(report string, cached bool) {
	state := "miss"
	if cached {
		state = "hit"
	}
	r.reportsServed.WithLabelValues(report, state).Inc()
}

// RecordAlertsSynthesized records how many alerts one pass produced.
func (r *Recorder) RecordAlertsSynthesized(n int) {
	r.alertsSynthesized.Observe(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
