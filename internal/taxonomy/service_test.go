// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/audiencia/internal/platform/apperr"
	"github.com/taibuivan/audiencia/internal/platform/events"
	"github.com/taibuivan/audiencia/internal/taxonomy"
)

type failingRepository struct{}

func (failingRepository) Get(context.Context) (taxonomy.Snapshot, error) {
	return taxonomy.Snapshot{}, errors.New("connection refused")
}

func (failingRepository) Append(context.Context, taxonomy.Delta) ([]taxonomy.Addition, error) {
	return nil, errors.New("connection refused")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_Extend publishes one event when a value is new and none when it is not.
*/
func TestService_Extend(t *testing.T) {
	hub := events.NewHub()
	subscription := hub.Subscribe(4)
	service := taxonomy.NewService(taxonomy.NewMemoryRepository(), hub, nil, discardLogger())
	ctx := context.Background()

	// 1. New value
	require.NoError(t, service.Extend(ctx, taxonomy.Delta{Subject: "PERITO"}))
	select {
	case evt := <-subscription:
		assert.Equal(t, events.KindTaxonomyUpdated, evt.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected taxonomy event")
	}

	// 2. Same value: no event
	require.NoError(t, service.Extend(ctx, taxonomy.Delta{Subject: "PERITO"}))
	select {
	case <-subscription:
		t.Fatal("unexpected event for an existing value")
	default:
	}

	snapshot, err := service.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snapshot.HasSubject("PERITO"))
	assert.Equal(t, int64(1), snapshot.Version)
}

/*
TestService_StoreFailure maps store errors to TRANSIENT_IO.
*/
func TestService_StoreFailure(t *testing.T) {
	service := taxonomy.NewService(failingRepository{}, events.Discard{}, nil, discardLogger())

	_, err := service.Snapshot(context.Background())
	assert.True(t, apperr.HasCode(err, apperr.CodeTransientIO))

	err = service.Extend(context.Background(), taxonomy.Delta{CourtCode: "16099"})
	assert.True(t, apperr.HasCode(err, apperr.CodeTransientIO))

	assert.NoError(t, service.Extend(context.Background(), taxonomy.Delta{}))
}

/*
TestMemoryRepository_ConcurrentAppends keeps every concurrently added value.
*/
func TestMemoryRepository_ConcurrentAppends(t *testing.T) {
	repository := taxonomy.NewMemoryRepository()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repository.Append(context.Background(), taxonomy.Delta{Subject: fmt.Sprintf("ROL %02d", i)})
		}()
	}
	wg.Wait()

	snapshot, err := repository.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Subjects, 27)
	assert.Equal(t, int64(20), snapshot.Version)
	assert.IsNonDecreasing(t, snapshot.Subjects)
}

/*
TestHandler_Get serves the defaults when nothing was stored.
*/
func TestHandler_Get(t *testing.T) {
	service := taxonomy.NewService(taxonomy.NewMemoryRepository(), events.Discard{}, nil, discardLogger())
	handler := taxonomy.NewHandler(service)

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"courtCodes":["16001","16002","16003","16004","16005"]`)
	assert.Contains(t, recorder.Body.String(), `"version":0`)
}
