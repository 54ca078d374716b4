// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grouping

import "time"

// # Dashboard Reducer

// State is the dashboard view: the last feed snapshot, the selected day and
// the groups derived from both.
type State[R Record] struct {
	Feed   []R
	Day    Day
	Groups Groups[R]
}

// Event is something the dashboard reacts to.
type Event interface {
	isEvent()
}

// FeedSnapshot carries a complete, fresh copy of the registration feed.
type FeedSnapshot[R Record] struct {
	Records []R
}

// DateSelected changes the day being viewed.
type DateSelected struct {
	Day Day
}

func (FeedSnapshot[R]) isEvent() {}
func (DateSelected) isEvent()    {}

// Reduce applies event to state and recomputes the groups from scratch.
// The input state is not modified. Unknown events return state unchanged.
func Reduce[R Record](state State[R], event Event, loc *time.Location) State[R] {
	next := state

	switch evt := event.(type) {
	case FeedSnapshot[R]:
		next.Feed = evt.Records
	case DateSelected:
		next.Day = evt.Day
	default:
		return state
	}

	next.Groups = Regroup(next.Feed, next.Day, loc)
	return next
}
