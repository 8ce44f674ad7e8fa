package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AdmissionDuration tracks the latency of admission decisions per strategy
	AdmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "coupon_admission_duration_seconds",
			Help: "Duration of coupon admission decisions in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"strategy", "result"},
	)

	// AdmissionResults counts admission outcomes by rejection reason
	AdmissionResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coupon_admission_results_total",
			Help: "Admission outcomes by strategy and result",
		},
		[]string{"strategy", "result"},
	)

	// PipelineRetries counts persistence retries inside the consumer
	PipelineRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coupon_pipeline_retries_total",
			Help: "Number of retried persistence attempts in the issuance pipeline",
		},
	)

	// DeadLettered counts messages routed to the dead-letter topic
	DeadLettered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coupon_pipeline_dead_lettered_total",
			Help: "Messages routed to the dead-letter topic by reason class",
		},
		[]string{"class"},
	)

	// UsageResults counts usage outcomes
	UsageResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coupon_usage_results_total",
			Help: "Grant usage outcomes",
		},
		[]string{"result"},
	)
)

// RecordAdmission records one admission decision and its latency
func RecordAdmission(strategy, result string, duration float64) {
	AdmissionDuration.WithLabelValues(strategy, result).Observe(duration)
	AdmissionResults.WithLabelValues(strategy, result).Inc()
}
