package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskly_page_renders_total",
			Help: "Total number of simulator pages rendered, by view state",
		},
		[]string{"state"},
	)

	UploadsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskly_uploads_total",
			Help: "Total number of audit trail uploads, by extension and outcome",
		},
		[]string{"extension", "outcome"},
	)

	SimulationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "riskly_simulation_duration_seconds",
			Help:    "Wall time of a simulated scan including the artificial delay",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 3, 5, 10},
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskly_http_requests_total",
			Help: "Total HTTP requests, by route pattern and status code",
		},
		[]string{"route", "code"},
	)
)
