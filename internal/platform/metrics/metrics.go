// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics holds the Prometheus collectors of the kiosk API.
//
// Every method is nil-safe so components can run without metrics in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login outcomes recorded by [Metrics.IncrementLogin].
const (
	LoginSuccess    = "success"
	LoginBreakGlass = "breakglass"
	LoginInvalid    = "invalid"
	LoginPending    = "pending"
)

// Metrics provides observability for intake, taxonomy growth, staff logins
// and the live feed.
type Metrics struct {
	RegistrationsSubmitted prometheus.Counter
	RegistrationsRejected  prometheus.Counter
	TaxonomyAdditions      *prometheus.CounterVec
	Logins                 *prometheus.CounterVec
	FeedSubscribers        prometheus.Gauge
	HTTPDuration           *prometheus.HistogramVec
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RegistrationsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "audiencia_registrations_submitted_total",
			Help: "Total number of registrations stored by the kiosk",
		}),

		RegistrationsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "audiencia_registrations_rejected_total",
			Help: "Total number of submissions rejected by validation",
		}),

		TaxonomyAdditions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "audiencia_taxonomy_additions_total",
			Help: "Custom values appended to the shared picklists",
		}, []string{"kind"}), // kind: "subject", "court_code"

		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "audiencia_staff_logins_total",
			Help: "Staff login attempts by outcome",
		}, []string{"outcome"}),

		FeedSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "audiencia_feed_subscribers",
			Help: "Dashboards currently connected to the live feed",
		}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "audiencia_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// IncrementSubmitted records a stored registration.
func (m *Metrics) IncrementSubmitted() {
	if m != nil {
		m.RegistrationsSubmitted.Inc()
	}
}

// IncrementRejected records a submission that failed validation.
func (m *Metrics) IncrementRejected() {
	if m != nil {
		m.RegistrationsRejected.Inc()
	}
}

// AddTaxonomy records n new picklist values of the given kind.
func (m *Metrics) AddTaxonomy(kind string, n int) {
	if m != nil && n > 0 {
		m.TaxonomyAdditions.WithLabelValues(kind).Add(float64(n))
	}
}

// IncrementLogin records a login attempt outcome.
func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}

// SubscriberJoined increments the live feed gauge.
func (m *Metrics) SubscriberJoined() {
	if m != nil {
		m.FeedSubscribers.Inc()
	}
}

// SubscriberLeft decrements the live feed gauge.
func (m *Metrics) SubscriberLeft() {
	if m != nil {
		m.FeedSubscribers.Dec()
	}
}

// # HTTP Instrumentation

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (writer *statusWriter) WriteHeader(code int) {
	writer.status = code
	writer.ResponseWriter.WriteHeader(code)
}

func (writer *statusWriter) Unwrap() http.ResponseWriter {
	return writer.ResponseWriter
}

// Instrument observes request latency labelled by the matched chi route.
// Long-lived routes (the live feed) should be mounted outside it.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		wrapped := &statusWriter{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(wrapped, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil && routeContext.RoutePattern() != "" {
			route = routeContext.RoutePattern()
		}

		m.HTTPDuration.
			WithLabelValues(request.Method, route, strconv.Itoa(wrapped.status)).
			Observe(time.Since(startTime).Seconds())
	})
}
