package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	WargaCreated        prometheus.Counter
	KeluargaCreated     prometheus.Counter
	EnrichmentLookups   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "simwarga_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "simwarga_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		WargaCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simwarga_warga_created_total",
			Help: "Total number of warga records created",
		}),
		KeluargaCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simwarga_keluarga_created_total",
			Help: "Total number of keluarga records created",
		}),
		EnrichmentLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simwarga_keluarga_enrichment_lookups_total",
			Help: "Total auxiliary lookups issued while enriching keluarga responses",
		}),
	}
}
