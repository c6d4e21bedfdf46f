package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voicetasks"

// Metrics are the orchestrator's prometheus collectors.
type Metrics struct {
	JobsTotal     *prometheus.CounterVec
	FallbackTotal *prometheus.CounterVec
	BatteryForced *prometheus.CounterVec
	JobDuration   prometheus.Histogram
	DebounceWait  prometheus.Histogram
	ActiveJobs    prometheus.Gauge
}

// NewMetrics registers the collectors with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		JobsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Orchestrated jobs by terminal status.",
		}, []string{"status"}),
		FallbackTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_results_total",
			Help:      "Results returned without validated tasks, by reason code.",
		}, []string{"reason"}),
		BatteryForced: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battery_forced_batch_total",
			Help:      "Jobs forced into batch mode by battery tier.",
		}, []string{"tier"}),
		JobDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time from job start to cleanup.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
		DebounceWait: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "debounce_wait_seconds",
			Help:      "Delay imposed on repeated triggers for the same input.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		ActiveJobs: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_jobs",
			Help:      "Jobs currently in the registry.",
		}),
	}
}
