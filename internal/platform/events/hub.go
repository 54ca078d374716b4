// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package events

import (
	"context"
	"sync"
)

// Hub fans events out to in-process subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	closed      bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber with the given buffer size.
// The returned channel is closed by [Hub.Unsubscribe] or [Hub.Close].
func (hub *Hub) Subscribe(buffer int) chan Event {
	channel := make(chan Event, buffer)

	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.closed {
		close(channel)
		return channel
	}
	hub.subscribers[channel] = struct{}{}
	return channel
}

// Unsubscribe removes and closes a subscriber channel. Safe to call twice.
func (hub *Hub) Unsubscribe(channel chan Event) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if _, ok := hub.subscribers[channel]; ok {
		delete(hub.subscribers, channel)
		close(channel)
	}
}

// Broadcast delivers evt to every subscriber without blocking. A subscriber
// whose buffer is full misses the event.
func (hub *Hub) Broadcast(evt Event) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for channel := range hub.subscribers {
		select {
		case channel <- evt:
		default:
		}
	}
}

// Publish implements [Publisher] for single-process deployments and tests.
func (hub *Hub) Publish(_ context.Context, evt Event) error {
	hub.Broadcast(evt)
	return nil
}

// Len returns the number of active subscribers.
func (hub *Hub) Len() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.subscribers)
}

// Close closes every subscriber channel; later subscriptions start closed.
func (hub *Hub) Close() {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for channel := range hub.subscribers {
		delete(hub.subscribers, channel)
		close(channel)
	}
	hub.closed = true
}
