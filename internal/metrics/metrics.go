// Package metrics records API client calls as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the API client reports to.
type Recorder interface {
	ObserveRequest(endpoint, outcome string, status int, d time.Duration)
	RecordSkipped(endpoint string)
}

type Collector struct {
	requests *prometheus.CounterVec
	statuses *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	skipped  *prometheus.CounterVec
}

// NewCollector registers the newsdesk metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdesk_api_requests_total",
			Help: "API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdesk_api_http_status_total",
			Help: "API responses by HTTP status code.",
		}, []string{"status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "newsdesk_api_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdesk_api_requests_skipped_total",
			Help: "Calls answered locally without a request.",
		}, []string{"endpoint"}),
	}

	reg.MustRegister(c.requests, c.statuses, c.latency, c.skipped)
	return c
}

// ObserveRequest records one finished request. status is 0 when no
// response was received.
func (c *Collector) ObserveRequest(endpoint, outcome string, status int, d time.Duration) {
	c.requests.WithLabelValues(endpoint, outcome).Inc()
	if status > 0 {
		c.statuses.WithLabelValues(strconv.Itoa(status)).Inc()
	}
	c.latency.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (c *Collector) RecordSkipped(endpoint string) {
	c.skipped.WithLabelValues(endpoint).Inc()
}

// Handler serves the registry for scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

type nop struct{}

// Nop discards everything.
func Nop() Recorder { return nop{} }

func (nop) ObserveRequest(string, string, int, time.Duration) {}
func (nop) RecordSkipped(string)                              {}
