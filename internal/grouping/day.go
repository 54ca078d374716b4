// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grouping

import (
	"fmt"
	"time"
)

// dayLayout is the wire format of a calendar day.
const dayLayout = "2006-01-02"

// Day is a calendar date in the courthouse zone, independent of any clock time.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf returns the calendar day of t as seen in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	local := t.In(loc)
	return Day{Year: local.Year(), Month: local.Month(), Date: local.Day()}
}

// ParseDay reads a YYYY-MM-DD value.
func ParseDay(value string) (Day, error) {
	parsed, err := time.Parse(dayLayout, value)
	if err != nil {
		return Day{}, fmt.Errorf("grouping_parse_day_failed: %w", err)
	}
	return Day{Year: parsed.Year(), Month: parsed.Month(), Date: parsed.Day()}, nil
}

// String formats the day as YYYY-MM-DD.
func (day Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", day.Year, int(day.Month), day.Date)
}

// IsZero reports whether no day was selected.
func (day Day) IsZero() bool {
	return day == Day{}
}

// Bounds returns the half-open interval [start, end) the day covers in loc.
// A day with a DST jump is still exactly one calendar day long.
func (day Day) Bounds(loc *time.Location) (start, end time.Time) {
	start = time.Date(day.Year, day.Month, day.Date, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
