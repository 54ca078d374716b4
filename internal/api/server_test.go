// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/audiencia/internal/api"
	"github.com/taibuivan/audiencia/internal/auth"
	"github.com/taibuivan/audiencia/internal/directory"
	"github.com/taibuivan/audiencia/internal/feed"
	"github.com/taibuivan/audiencia/internal/platform/config"
	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/internal/platform/events"
	"github.com/taibuivan/audiencia/internal/platform/metrics"
	"github.com/taibuivan/audiencia/internal/platform/sec"
	"github.com/taibuivan/audiencia/internal/registration"
	"github.com/taibuivan/audiencia/internal/session"
	"github.com/taibuivan/audiencia/internal/taxonomy"
)

type testServer struct {
	handler http.Handler
	tokens  *sec.TokenService
}

func newTestServer(t *testing.T, health api.HealthDependencies) testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	courthouse := time.FixedZone("CST", -6*60*60)

	store := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: store.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, constants.AuthIssuer)
	revocations := auth.NewRevocationStore(client)

	registry := prometheus.NewRegistry()
	appMetrics := metrics.New(registry)

	hub := events.NewHub()
	t.Cleanup(hub.Close)

	tax := taxonomy.NewService(taxonomy.NewMemoryRepository(), hub, appMetrics, logger)
	registrations := registration.NewService(registration.NewMemoryRepository(time.Now), tax, hub, appMetrics, logger, courthouse)
	dir := directory.NewService(directory.NewMemoryRepository(), revocations, hub, logger, bcrypt.MinCost)
	authService := auth.NewService(dir, tokens, revocations, auth.BreakGlass{}, appMetrics, logger)

	liveness, readiness := api.NewHealthHandlers(health, logger)
	cfg := &config.Config{ServerPort: "0", Environment: "test"}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, logger, api.Security{Verifier: tokens, Revocations: revocations}, appMetrics, api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Registrations: registration.NewHandler(registrations),
		Taxonomy:      taxonomy.NewHandler(tax),
		Directory:     directory.NewHandler(dir),
		Auth:          auth.NewHandler(authService),
		Session:       session.NewHandler(health.Ready),
		Feed:          feed.NewHandler(registrations, dir, hub, appMetrics, nil, logger),
	})

	return testServer{handler: server.Handler(), tokens: tokens}
}

func (s testServer) do(method, target, body, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, request)
	return recorder
}

func healthy() api.HealthDependencies {
	ok := func(context.Context) error { return nil }
	return api.HealthDependencies{CheckDatabase: ok, CheckCache: ok}
}

const anaLopez = `{"fullName":"ANA LOPEZ","phone":"55512345","email":"a@a.com",
	"causaCode":"16004","causaYear":"2024","causaNumber":"7","subject":"SINDICADO"}`

func TestServer_Probes(t *testing.T) {
	s := newTestServer(t, healthy())

	live := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, live.Code)
	assert.Contains(t, live.Body.String(), constants.AppName)

	ready := s.do(http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"ready"`)
}

func TestServer_ReadyDegraded(t *testing.T) {
	deps := healthy()
	deps.CheckCache = func(context.Context) error { return errors.New("redis down") }
	s := newTestServer(t, deps)

	ready := s.do(http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
	assert.Contains(t, ready.Body.String(), `"degraded"`)
	assert.Contains(t, ready.Body.String(), "redis down")

	// The kiosk sees the outage as a lost connection.
	state := s.do(http.MethodGet, "/api/v1/session?view=form&event=submitted", "", "")
	assert.Equal(t, http.StatusOK, state.Code)
	assert.Contains(t, state.Body.String(), `"view":"form"`)
	assert.Contains(t, state.Body.String(), `"connected":false`)
}

func TestServer_IntakeAndStaffRead(t *testing.T) {
	s := newTestServer(t, healthy())

	created := s.do(http.MethodPost, "/api/v1/registrations", anaLopez, "")
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	assert.Contains(t, created.Body.String(), "[C-16004] - [2024] - [00007]")

	anonymous := s.do(http.MethodGet, "/api/v1/registrations", "", "")
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	token, err := s.tokens.GenerateAccessToken("staff-1", "Carla", string(sec.RoleAuxiliar), time.Hour)
	require.NoError(t, err)

	day := s.do(http.MethodGet, "/api/v1/registrations", "", token)
	assert.Equal(t, http.StatusOK, day.Code)

	archive := s.do(http.MethodPost, "/api/v1/registrations/export", "", token)
	assert.Equal(t, http.StatusForbidden, archive.Code)
}

func TestServer_BadTokenIsRejected(t *testing.T) {
	s := newTestServer(t, healthy())

	response := s.do(http.MethodGet, "/api/v1/taxonomy", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, healthy())

	s.do(http.MethodPost, "/api/v1/registrations", anaLopez, "")

	scrape := s.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), "audiencia_registrations_submitted_total 1")
	assert.Contains(t, scrape.Body.String(), "audiencia_http_request_duration_seconds")
}
