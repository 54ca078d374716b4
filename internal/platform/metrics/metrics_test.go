// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/audiencia/internal/platform/metrics"
)

/*
TestMetrics_Counters verifies the domain counters move as expected.
*/
func TestMetrics_Counters(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.IncrementSubmitted()
	m.IncrementSubmitted()
	m.IncrementRejected()
	m.AddTaxonomy("subject", 1)
	m.AddTaxonomy("court_code", 0)
	m.IncrementLogin(metrics.LoginPending)
	m.SubscriberJoined()
	m.SubscriberJoined()
	m.SubscriberLeft()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TaxonomyAdditions.WithLabelValues("subject")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TaxonomyAdditions.WithLabelValues("court_code")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues(metrics.LoginPending)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedSubscribers))
}

/*
TestMetrics_NilSafe ensures a nil collector set is a no-op.
*/
func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.IncrementSubmitted()
		m.AddTaxonomy("subject", 3)
		m.IncrementLogin(metrics.LoginSuccess)
		m.SubscriberJoined()
	})

	handler := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})
	recorder := httptest.NewRecorder()
	m.Instrument(handler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

/*
TestMetrics_Instrument records one observation per request under the route pattern.
*/
func TestMetrics_Instrument(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	router := chi.NewRouter()
	router.Use(m.Instrument)
	router.Get("/api/v1/directory/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/directory/abc", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPDuration))
}
