// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kioskredis "github.com/taibuivan/audiencia/internal/platform/redis"
)

/*
TestNewClient_ConnectsAndPings verifies URL parsing and the startup ping.
*/
func TestNewClient_ConnectsAndPings(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := kioskredis.NewClient(context.Background(), "redis://"+server.Addr(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, kioskredis.Ping(context.Background(), client))
}

/*
TestNewClient_InvalidURL ensures malformed URLs fail before dialing.
*/
func TestNewClient_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := kioskredis.NewClient(context.Background(), "not a url", logger)
	assert.Error(t, err)
}

/*
TestNewClient_Unreachable ensures the startup ping reports a dead server.
*/
func TestNewClient_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := kioskredis.NewClient(context.Background(), "redis://"+addr, logger)
	assert.Error(t, err)
}
