// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package feed streams the staff dashboard over a WebSocket.

A connected dashboard receives the grouped registrations of its selected day
on connect and again after every change notification. Administrators also
receive the pending directory entries whenever the directory changes.

Frames:

	{"kind":"registrations","day":"2024-03-04","groups":[...],"total":3}
	{"kind":"taxonomy"}
	{"kind":"directory","pending":[...]}

A dashboard switches day by sending {"date":"2024-03-05"}. Each connection
keeps a [grouping.State] and recomputes its groups through [grouping.Reduce].
*/
package feed

import (
	"context"
	"time"

	"github.com/taibuivan/audiencia/internal/directory"
	"github.com/taibuivan/audiencia/internal/grouping"
	"github.com/taibuivan/audiencia/internal/registration"
)

// FrameKind names a frame pushed to a dashboard.
type FrameKind string

const (
	FrameRegistrations FrameKind = "registrations"
	FrameTaxonomy      FrameKind = "taxonomy"
	FrameDirectory     FrameKind = "directory"
)

// Frame is a single WebSocket message. Registration frames always carry
// day, groups and total; directory frames always carry pending.
type Frame struct {
	Kind FrameKind `json:"kind"`
	*DayView
	*PendingView
}

// DayView is the grouped content of a registrations frame.
type DayView struct {
	Day    string                                      `json:"day"`
	Groups []grouping.Group[registration.Registration] `json:"groups"`
	Total  int                                         `json:"total"`
}

// PendingView is the content of a directory frame.
type PendingView struct {
	Pending []directory.Entry `json:"pending"`
}

// Selection is the only message a dashboard sends.
type Selection struct {
	Date string `json:"date"`
}

// Registrations is the read side the feed groups from.
type Registrations interface {
	Snapshot(context context.Context, day grouping.Day) ([]registration.Registration, error)
	Location() *time.Location
}

// Directory lists entries for the admin frames.
type Directory interface {
	List(context context.Context, status string) ([]directory.Entry, error)
}

func registrationsFrame(groups grouping.Groups[registration.Registration]) Frame {
	list := groups.List()
	if list == nil {
		list = []grouping.Group[registration.Registration]{}
	}

	return Frame{
		Kind: FrameRegistrations,
		DayView: &DayView{
			Day:    groups.Day.String(),
			Groups: list,
			Total:  groups.Total,
		},
	}
}

func directoryFrame(pending []directory.Entry) Frame {
	if pending == nil {
		pending = []directory.Entry{}
	}
	return Frame{Kind: FrameDirectory, PendingView: &PendingView{Pending: pending}}
}
