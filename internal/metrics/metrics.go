package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Extraction outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport"
	OutcomeService   = "service"
	OutcomeContract  = "contract"
)

var (
	ExtractionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sctr_extraction_requests_total",
			Help: "Calls to the extraction service by outcome",
		},
		[]string{"outcome"},
	)

	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sctr_extraction_duration_seconds",
		Help:    "Latency of extraction service calls",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 120},
	})

	UploadRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sctr_upload_rejections_total",
			Help: "Submissions or uploads rejected before reaching the extraction service",
		},
		[]string{"reason"},
	)

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sctr_active_sessions",
		Help: "Browser sessions currently held in memory",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
