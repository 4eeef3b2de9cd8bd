// Copyright 2026 The aegis Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// A Collector receives counters and latencies from a client as its
// requests complete. Implementations must be safe for concurrent use
// by multiple goroutines.
type Collector interface {
	// IncRequests counts one dispatched request.
	IncRequests(method, host string)
	// IncFailures counts one failed request. Status is the HTTP
	// status code, or zero for transport-level faults.
	IncFailures(method, host string, status int)
	// IncCircuitRejections counts one request rejected because the
	// circuit breaker was open. Rejected requests are not counted by
	// IncRequests.
	IncCircuitRejections(host string)
	// ObserveLatency records the wall-clock duration of one completed
	// request, successful or not.
	ObserveLatency(method, host string, d time.Duration)
}

// Nop is a Collector that discards everything.
type Nop struct{}

func (Nop) IncRequests(string, string)                   {}
func (Nop) IncFailures(string, string, int)              {}
func (Nop) IncCircuitRejections(string)                  {}
func (Nop) ObserveLatency(string, string, time.Duration) {}

// Prometheus is a Collector backed by prometheus metrics.
type Prometheus struct {
	requests   *prometheus.CounterVec
	failures   *prometheus.CounterVec
	rejections *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewPrometheus registers the collector's metrics with reg and returns
// the collector. Passing nil registers with the default registerer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Prometheus{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_requests_total",
			Help: "Outbound HTTP requests dispatched.",
		}, []string{"method", "host"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_failures_total",
			Help: "Outbound HTTP requests that failed, by status code (0 for transport faults).",
		}, []string{"method", "host", "status"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_circuit_rejections_total",
			Help: "Requests rejected without dispatch because the circuit breaker was open.",
		}, []string{"host"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aegis_request_duration_seconds",
			Help:    "Wall-clock duration of outbound HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "host"}),
	}
}

func (p *Prometheus) IncRequests(method, host string) {
	p.requests.WithLabelValues(method, host).Inc()
}

func (p *Prometheus) IncFailures(method, host string, status int) {
	p.failures.WithLabelValues(method, host, strconv.Itoa(status)).Inc()
}

func (p *Prometheus) IncCircuitRejections(host string) {
	p.rejections.WithLabelValues(host).Inc()
}

func (p *Prometheus) ObserveLatency(method, host string, d time.Duration) {
	p.latency.WithLabelValues(method, host).Observe(d.Seconds())
}
