package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/woozymasta/coordparse/internal/parser"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Parse outcomes used as metric labels and in error responses.
const (
	outcomeOK     = "ok"
	outcomeSyntax = "syntax"
	outcomeRange  = "range"
	outcomeBounds = "bounds"
)

var (
	parseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coordparse",
		Subsystem: "parser",
		Name:      "parse_total",
		Help:      "Total coordinate strings parsed, by outcome",
	}, []string{"outcome"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coordparse",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "coordparse",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "route"})
)

// outcome classifies a parse error for metrics and responses.
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, parser.ErrSyntax):
		return outcomeSyntax
	case errors.Is(err, parser.ErrRange):
		return outcomeRange
	default:
		return outcomeBounds
	}
}

func observeParse(err error) {
	parseTotal.WithLabelValues(outcome(err)).Inc()
}

func observeRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// routeLabel keeps metric cardinality bounded.
func routeLabel(path string) string {
	switch path {
	case "/", "/favicon.svg", "/metrics", "/api/parse", "/api/geojson", "/api/distance":
		return path
	default:
		return "other"
	}
}
