package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxlate_requests_total",
			Help: "Total number of translation requests",
		},
		[]string{"input", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voxlate_request_duration_seconds",
			Help:    "Duration of translation requests in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"input", "status"},
	)

	synthesisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxlate_synthesis_total",
			Help: "Speech synthesis attempts by outcome (ok, failed, skipped, disabled)",
		},
		[]string{"status"},
	)

	detectionFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voxlate_detection_fallbacks_total",
			Help: "Number of detections that fell back to the default language",
		},
	)

	transcriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxlate_transcriptions_total",
			Help: "Speech transcriptions by outcome",
		},
		[]string{"outcome"},
	)
)

func observeRequest(input string, result Result, duration time.Duration) {
	status := string(result.Status)
	requestsTotal.WithLabelValues(input, status).Inc()
	requestDuration.WithLabelValues(input, status).Observe(duration.Seconds())
}
