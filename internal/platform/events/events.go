// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package events carries change notifications from the stores to live subscribers.

Flow:

	service ──Publish──▶ Publisher (Hub or RedisBridge)
	                          │
	RedisBridge.Run ◀── Redis channel (all API replicas)
	      │
	      ▼
	Hub.Broadcast ──▶ subscriber channels (one per dashboard socket)

Events are hints, not data: a subscriber re-reads the store when one arrives.
Dropping an event for a slow subscriber is therefore harmless as long as a
later event or a reconnect follows.
*/
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Kind names what changed.
type Kind string

const (
	KindRegistrationCreated Kind = "registration.created"
	KindTaxonomyUpdated     Kind = "taxonomy.updated"
	KindDirectoryChanged    Kind = "directory.changed"
)

// Event is a single change notification.
type Event struct {
	Kind Kind            `json:"kind"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent builds an event stamped with the current time. Data that cannot be
// encoded is dropped; the kind alone is enough to trigger a refresh.
func NewEvent(kind Kind, data any) Event {
	evt := Event{Kind: kind, At: time.Now().UTC()}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			evt.Data = raw
		}
	}
	return evt
}

// Publisher is what services depend on to announce a change.
type Publisher interface {
	Publish(context context.Context, evt Event) error
}

// Discard is a [Publisher] that drops everything.
type Discard struct{}

// Publish implements [Publisher].
func (Discard) Publish(context.Context, Event) error { return nil }
