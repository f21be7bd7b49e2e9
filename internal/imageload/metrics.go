package imageload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbview_image_requests_total",
			Help: "Image loads issued, by source kind",
		},
		[]string{"kind"},
	)

	requestResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbview_image_results_total",
			Help: "Image loads delivered to their target, by outcome",
		},
		[]string{"outcome"},
	)

	staleDrops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thumbview_image_stale_drops_total",
			Help: "Completions dropped because the target moved on or the load was canceled",
		},
	)

	inFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbview_image_loads_in_flight",
			Help: "Image loads currently decoding",
		},
	)
)
