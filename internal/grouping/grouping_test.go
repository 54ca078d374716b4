// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grouping_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/audiencia/internal/grouping"
)

type record struct {
	id    string
	key   string
	email string
	at    time.Time
}

func (r record) GroupKey() string       { return r.key }
func (r record) CreatedTime() time.Time { return r.at }
func (r record) ContactEmail() string   { return r.email }

const (
	keyOne = "[C-16004] - [2024] - [00007]"
	keyTwo = "[C-16001] - [2023] - [00120]"
)

// guatemala mirrors the courthouse zone (UTC-6, no DST) without tzdata.
func guatemala(t *testing.T) *time.Location {
	t.Helper()
	return time.FixedZone("CST", -6*60*60)
}

func ids(records []record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.id)
	}
	return out
}

func TestRegroup_PartitionsSelectedDay(t *testing.T) {
	loc := guatemala(t)
	day := grouping.Day{Year: 2024, Month: time.March, Date: 4}

	// Newest first, as the store delivers it.
	feed := []record{
		{id: "r3", key: keyTwo, email: "c@c.com", at: time.Date(2024, 3, 4, 11, 0, 0, 0, loc)},
		{id: "r2", key: keyOne, email: "b@b.com", at: time.Date(2024, 3, 4, 10, 0, 0, 0, loc)},
		{id: "r1", key: keyOne, email: "a@a.com", at: time.Date(2024, 3, 4, 9, 0, 0, 0, loc)},
		{id: "r0", key: keyOne, email: "z@z.com", at: time.Date(2024, 3, 3, 9, 0, 0, 0, loc)},
	}

	groups := grouping.Regroup(feed, day, loc)

	assert.Equal(t, 3, groups.Total)
	assert.Equal(t, []string{keyTwo, keyOne}, groups.Keys)
	assert.Equal(t, []string{"r2", "r1"}, ids(groups.ByKey[keyOne]))
	assert.Equal(t, []string{"r3"}, ids(groups.ByKey[keyTwo]))
}

func TestRegroup_UsesLocalCalendarDay(t *testing.T) {
	loc := guatemala(t)
	day := grouping.Day{Year: 2024, Month: time.March, Date: 4}

	// 23:30 local on March 4 is already March 5 in UTC.
	late := time.Date(2024, 3, 4, 23, 30, 0, 0, loc).UTC()
	feed := []record{{id: "late", key: keyOne, at: late}}

	assert.Equal(t, 1, grouping.Regroup(feed, day, loc).Total)
	assert.Zero(t, grouping.Regroup(feed, grouping.Day{Year: 2024, Month: time.March, Date: 5}, loc).Total)
}

func TestRegroup_SkipsUnstampedRecords(t *testing.T) {
	loc := guatemala(t)
	feed := []record{{id: "pending", key: keyOne}}

	groups := grouping.Regroup(feed, grouping.DayOf(time.Now(), loc), loc)

	assert.Zero(t, groups.Total)
	assert.Empty(t, groups.Keys)
}

func TestRegroup_Idempotent(t *testing.T) {
	loc := guatemala(t)
	day := grouping.Day{Year: 2024, Month: time.March, Date: 4}
	feed := []record{
		{id: "r2", key: keyOne, at: time.Date(2024, 3, 4, 10, 0, 0, 0, loc)},
		{id: "r1", key: keyTwo, at: time.Date(2024, 3, 4, 9, 0, 0, 0, loc)},
	}

	assert.Equal(t, grouping.Regroup(feed, day, loc), grouping.Regroup(feed, day, loc))
}

func TestCollectEmails_KeepsOrderAndDuplicates(t *testing.T) {
	group := []record{
		{email: "a@a.com"},
		{email: "b@b.com"},
		{email: "a@a.com"},
	}

	assert.Equal(t, []string{"a@a.com", "b@b.com", "a@a.com"}, grouping.CollectEmails(group))
	assert.Equal(t, "a@a.com; b@b.com; a@a.com", grouping.Clipboard(group))
	assert.Equal(t, []string{}, grouping.CollectEmails[record](nil))
	assert.Equal(t, "", grouping.Clipboard[record](nil))
}

func TestGroups_List(t *testing.T) {
	loc := guatemala(t)
	day := grouping.Day{Year: 2024, Month: time.March, Date: 4}
	feed := []record{
		{id: "r2", key: keyOne, email: "b@b.com", at: time.Date(2024, 3, 4, 10, 0, 0, 0, loc)},
		{id: "r1", key: keyOne, email: "a@a.com", at: time.Date(2024, 3, 4, 9, 0, 0, 0, loc)},
	}

	list := grouping.Regroup(feed, day, loc).List()

	require.Len(t, list, 1)
	assert.Equal(t, keyOne, list[0].Causa)
	assert.Equal(t, "b@b.com; a@a.com", list[0].Clipboard)
	assert.Len(t, list[0].Registrations, 2)
}

func TestDay(t *testing.T) {
	day, err := grouping.ParseDay("2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", day.String())
	assert.False(t, day.IsZero())

	_, err = grouping.ParseDay("04/03/2024")
	assert.Error(t, err)

	loc := guatemala(t)
	start, end := day.Bounds(loc)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestReduce(t *testing.T) {
	loc := guatemala(t)
	monday := grouping.Day{Year: 2024, Month: time.March, Date: 4}
	tuesday := grouping.Day{Year: 2024, Month: time.March, Date: 5}
	feed := []record{
		{id: "r2", key: keyOne, at: time.Date(2024, 3, 5, 10, 0, 0, 0, loc)},
		{id: "r1", key: keyOne, at: time.Date(2024, 3, 4, 9, 0, 0, 0, loc)},
	}

	state := grouping.State[record]{Day: monday}

	state = grouping.Reduce(state, grouping.FeedSnapshot[record]{Records: feed}, loc)
	assert.Equal(t, []string{"r1"}, ids(state.Groups.ByKey[keyOne]))

	previous := state
	state = grouping.Reduce(state, grouping.DateSelected{Day: tuesday}, loc)
	assert.Equal(t, []string{"r2"}, ids(state.Groups.ByKey[keyOne]))
	assert.Equal(t, monday, previous.Day)

	// A fresh snapshot replaces the feed rather than appending to it.
	state = grouping.Reduce(state, grouping.FeedSnapshot[record]{Records: feed[:1]}, loc)
	assert.Equal(t, 1, state.Groups.Total)
}
