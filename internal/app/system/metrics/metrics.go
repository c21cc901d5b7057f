// Package metrics records Prometheus metrics for calls made to the school API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream calls.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected" // non-2xx status
	OutcomeNetwork  = "network"  // transport failure or timeout
)

// Upstream holds the collectors for school API traffic.
// A nil *Upstream is valid and records nothing.
type Upstream struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	reg      *prometheus.Registry
}

// NewUpstream creates and registers the upstream collectors on a private
// registry, so tests and multiple handlers do not collide on the default one.
func NewUpstream() *Upstream {
	reg := prometheus.NewRegistry()
	u := &Upstream{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schooladmin",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "School API requests by resource, method and outcome.",
		}, []string{"resource", "method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "schooladmin",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "School API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "method"}),
		reg: reg,
	}
	reg.MustRegister(u.requests, u.duration)
	reg.MustRegister(collectors.NewGoCollector())
	return u
}

// Observe records one finished upstream call.
func (u *Upstream) Observe(resource, method, outcome string, elapsed time.Duration) {
	if u == nil {
		return
	}
	u.requests.WithLabelValues(resource, method, outcome).Inc()
	u.duration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (u *Upstream) Handler() http.Handler {
	if u == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(u.reg, promhttp.HandlerOpts{})
}
