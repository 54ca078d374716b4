// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package grouping clusters the registrations of one calendar day by case key.

It is the read side of intake: the dashboard hands it the full feed and a
selected day and gets back one group per hearing. Nothing here keeps state
between calls; every update recomputes from the snapshot it is given, so the
same feed and day always yield the same groups.

	feed ──Regroup(day)──▶ Groups{Keys: [K2, K1], ByKey: {K2: [r3], K1: [r1, r2]}}
*/
package grouping

import (
	"strings"
	"time"

	"github.com/taibuivan/audiencia/pkg/slice"
)

// Record is what the engine needs from a registration.
type Record interface {
	// GroupKey is the canonical case key (causaFull).
	GroupKey() string

	// CreatedTime is the server timestamp; the zero time means not yet stamped.
	CreatedTime() time.Time

	// ContactEmail is the visitor email used for the clipboard.
	ContactEmail() string
}

// clipboardSeparator joins the emails of a group for pasting into a mail client.
const clipboardSeparator = "; "

// Groups is the result of [Regroup].
type Groups[R Record] struct {
	Day Day

	// Keys lists the case keys in order of first appearance in the feed.
	Keys  []string
	ByKey map[string][]R

	// Total counts the in-scope registrations of the day.
	Total int
}

// Group is the wire form of one case on the dashboard.
type Group[R Record] struct {
	Causa         string   `json:"causa"`
	Registrations []R      `json:"registrations"`
	Emails        []string `json:"emails"`
	Clipboard     string   `json:"clipboard"`
}

/*
Regroup partitions the registrations of day by case key.

Description: Records without a server timestamp are skipped, as are records
whose local date in loc differs from day. Within a group the relative order
of the feed is preserved.

Parameters:
  - feed: []R (any order; typically newest first)
  - day: Day (calendar day in loc)
  - loc: *time.Location (courthouse zone)

Returns:
  - Groups[R]: Ordered keys and their registrations
*/
func Regroup[R Record](feed []R, day Day, loc *time.Location) Groups[R] {
	inScope := slice.Filter(feed, func(record R) bool {
		created := record.CreatedTime()
		return !created.IsZero() && DayOf(created, loc) == day
	})

	keys, byKey := slice.GroupOrdered(inScope, func(record R) string {
		return record.GroupKey()
	})

	return Groups[R]{
		Day:   day,
		Keys:  keys,
		ByKey: byKey,
		Total: len(inScope),
	}
}

// List returns the groups in key order with their emails and clipboard text.
func (groups Groups[R]) List() []Group[R] {
	return slice.Map(groups.Keys, func(key string) Group[R] {
		members := groups.ByKey[key]
		return Group[R]{
			Causa:         key,
			Registrations: members,
			Emails:        CollectEmails(members),
			Clipboard:     Clipboard(members),
		}
	})
}

// CollectEmails returns the emails of group in group order. Duplicates are kept.
func CollectEmails[R Record](group []R) []string {
	emails := slice.Map(group, func(record R) string {
		return record.ContactEmail()
	})
	if emails == nil {
		return []string{}
	}
	return emails
}

// Clipboard joins the emails of group with "; ".
func Clipboard[R Record](group []R) string {
	return strings.Join(CollectEmails(group), clipboardSeparator)
}
