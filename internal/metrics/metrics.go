package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal counts API requests by method, path and status
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "construct_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration tracks request latency by method and path
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "construct_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// InvoicesCreatedTotal counts invoices raised through the ledger
var InvoicesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "construct_invoices_created_total",
		Help: "Total number of invoices created",
	},
)

// PaymentsRecordedTotal counts payments applied through the ledger
var PaymentsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "construct_payments_recorded_total",
		Help: "Total number of payments recorded",
	},
)

// OverdueSweepFlips counts invoices flipped to OVERDUE by the sweep
var OverdueSweepFlips = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "construct_overdue_sweep_flips_total",
		Help: "Invoices flipped from SENT to OVERDUE by the sweep",
	},
)
