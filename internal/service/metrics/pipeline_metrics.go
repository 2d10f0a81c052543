package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	PipelineLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bizpulse",
			Subsystem: "pipeline",
			Name:      "latency_seconds",
			Help:      "Latency of pipeline HTTP endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	PipelineErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bizpulse",
			Subsystem: "pipeline",
			Name:      "errors_total",
			Help:      "Errors by pipeline HTTP endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(PipelineLatency, PipelineErrors)
	})
}
