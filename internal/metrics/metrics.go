// Package metrics defines custom Prometheus metrics for chronoidd.
package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// registerOnce ensures Register() is idempotent.
var registerOnce sync.Once

// HTTP metrics (RED: Rate, Errors, Duration).
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronoid_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency in seconds by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chronoid_http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// ID operation metrics.
var (
	// IDsGeneratedTotal counts generated IDs by variant.
	IDsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronoid_ids_generated_total",
			Help: "IDs generated by variant",
		},
		[]string{"variant"},
	)

	// ParseTotal counts parse operations by codec and status.
	ParseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronoid_parse_total",
			Help: "Parse operations by codec and status",
		},
		[]string{"codec", "status"},
	)

	// PersonaRotationsTotal counts persona rotations by cause.
	PersonaRotationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronoid_persona_rotations_total",
			Help: "Persona rotations by cause",
		},
		[]string{"cause"},
	)

	// RegistryNodesTotal is a gauge tracking registered node personas.
	RegistryNodesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chronoid_registry_nodes_total",
			Help: "Node personas in the registry",
		},
	)
)

// Register registers all Prometheus collectors with the default registry.
// This must be called explicitly (typically from main) so that metrics
// registration can be made conditional on configuration. It is safe to call
// multiple times; subsequent calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			IDsGeneratedTotal,
			ParseTotal,
			PersonaRotationsTotal,
			RegistryNodesTotal,
		)
		// Initialize ParseTotal so it appears in /metrics output
		// even before any parse has been performed.
		ParseTotal.WithLabelValues("iso", "success")
	})
}

// NormalizePath maps actual request paths to normalized path templates
// suitable for use as Prometheus metric labels. This avoids high-cardinality
// labels from individual variant names and raw ID values.
func NormalizePath(path string) string {
	// Known fixed paths.
	switch path {
	case "/health":
		return "/health"
	case "/docs", "/docs/":
		return "/docs"
	case "/metrics":
		return "/metrics"
	case "/openapi.json":
		return "/openapi.json"
	case "/v1/variants":
		return "/v1/variants"
	case "/v1/ids":
		return "/v1/ids"
	case "/v1/parse":
		return "/v1/parse"
	case "/", "":
		return "/"
	}

	// Starts with /docs (Stoplight Elements assets).
	if strings.HasPrefix(path, "/docs") {
		return "/docs"
	}

	// Inspection routes carry the variant name and raw value in the path.
	if strings.HasPrefix(path, "/v1/ids/") {
		return "/v1/ids/{variant}/{raw}"
	}
	if strings.HasPrefix(path, "/v1/variants/") {
		return "/v1/variants/{variant}"
	}

	return "/other"
}
