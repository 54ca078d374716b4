// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisBridge publishes events on a Redis channel and relays everything
// received on that channel into a local [Hub], so dashboards connected to
// any replica see changes made through any other.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *slog.Logger
}

// NewRedisBridge creates a bridge between the Redis channel and hub.
func NewRedisBridge(client *redis.Client, channel string, hub *Hub, logger *slog.Logger) *RedisBridge {
	return &RedisBridge{client: client, channel: channel, hub: hub, logger: logger}
}

// Publish implements [Publisher]. The local hub receives the event back
// through [RedisBridge.Run], never directly.
func (bridge *RedisBridge) Publish(context context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events_bridge_encode_failed: %w", err)
	}

	if err := bridge.client.Publish(context, bridge.channel, payload).Err(); err != nil {
		return fmt.Errorf("events_bridge_publish_failed: %w", err)
	}
	return nil
}

// Run relays channel messages into the hub until context is cancelled.
func (bridge *RedisBridge) Run(context context.Context) error {
	subscription := bridge.client.Subscribe(context, bridge.channel)
	defer func() { _ = subscription.Close() }()

	// Wait for the subscription to be confirmed before reporting readiness.
	if _, err := subscription.Receive(context); err != nil {
		if context.Err() != nil {
			return nil
		}
		return fmt.Errorf("events_bridge_subscribe_failed: %w", err)
	}

	bridge.logger.Info("event_bridge_subscribed", slog.String("channel", bridge.channel))

	messages := subscription.Channel()
	for {
		select {
		case <-context.Done():
			return nil
		case message, ok := <-messages:
			if !ok {
				return nil
			}

			var evt Event
			if err := json.Unmarshal([]byte(message.Payload), &evt); err != nil {
				bridge.logger.Warn("event_bridge_bad_payload", slog.String("error", err.Error()))
				continue
			}
			bridge.hub.Broadcast(evt)
		}
	}
}
