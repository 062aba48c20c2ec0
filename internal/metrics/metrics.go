package metrics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/peoplecare/hrportal/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	MagicLinksIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hrportal",
		Name:      "magic_links_issued_total",
		Help:      "Total magic links issued.",
	})

	MagicLinkVerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrportal",
		Name:      "magic_link_verifications_total",
		Help:      "Magic-link verification attempts, by outcome.",
	}, []string{"outcome"})

	TokenRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrportal",
		Name:      "token_refreshes_total",
		Help:      "Refresh-token rotations, by outcome.",
	}, []string{"outcome"})

	LogoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hrportal",
		Name:      "logouts_total",
		Help:      "Total logout calls.",
	})

	// Chat metrics

	ChatRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrportal",
		Name:      "chat_requests_total",
		Help:      "Chat questions, by outcome (answered, escalated).",
	}, []string{"outcome"})

	// Housekeeping

	PurgedLinksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hrportal",
		Name:      "purged_magic_links_total",
		Help:      "Dead magic-link rows removed by housekeeping.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hrportal",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrportal",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		MagicLinksIssuedTotal,
		MagicLinkVerificationsTotal,
		TokenRefreshesTotal,
		LogoutsTotal,
		ChatRequestsTotal,
		PurgedLinksTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// Checker is satisfied by *health.Checker.
type Checker interface {
	Liveness(ctx context.Context) health.HealthResult
	Readiness(ctx context.Context) health.HealthResult
}

func NewServer(addr string, checker Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
