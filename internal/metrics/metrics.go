package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketledger/internal/domain"
)

var (
	// CatalogOps counts product catalog calls by operation and outcome.
	CatalogOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketledger_catalog_ops_total",
			Help: "Total number of product catalog operations (by op and result).",
		},
		[]string{"op", "result"},
	)

	// LedgerOps counts token ledger calls by operation and outcome.
	LedgerOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketledger_ledger_ops_total",
			Help: "Total number of token ledger operations (by op and result).",
		},
		[]string{"op", "result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketledger_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms → ~4s
		},
		[]string{"method", "route", "status"},
	)

	EventPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketledger_event_publish_errors_total",
			Help: "Number of catalog event publish failures.",
		},
		[]string{"subject"},
	)
)

// Result maps an operation error to its metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPermissionDenied):
		return "permission_denied"
	default:
		return "error"
	}
}

func IncCatalogOp(op string, err error) {
	CatalogOps.WithLabelValues(op, Result(err)).Inc()
}

func IncLedgerOp(op, result string) {
	LedgerOps.WithLabelValues(op, result).Inc()
}

// ObserveDuration records the time elapsed since start on a histogram.
func ObserveDuration(h *prometheus.HistogramVec, start time.Time, labels ...string) {
	h.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
