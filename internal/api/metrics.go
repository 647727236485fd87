package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorecard_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scorecard_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	entriesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorecard_entries_appended_total",
		Help: "Entries appended to the store by source kind.",
	}, []string{"source"})

	importedFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorecard_import_files_total",
		Help: "Imported files by result.",
	}, []string{"result"})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorecard_exports_total",
		Help: "Completed exports by format.",
	}, []string{"format"})
)
