// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session decides which screen a kiosk terminal shows.

The state is never stored. Each event is reduced into a new state and the
result passes through [Resolve], which enforces the two gates:

  - the dashboard requires an admin or auxiliar identity, otherwise login;
  - a submission made while disconnected keeps the visitor on the form.

Logging out drops the identity only; the public kiosk stays connected.
*/
package session

import "github.com/taibuivan/audiencia/internal/platform/sec"

// View is a top-level screen.
type View string

const (
	ViewWelcome   View = "welcome"
	ViewForm      View = "form"
	ViewSuccess   View = "success"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

// Identity is the signed-in staff member.
type Identity struct {
	Name string       `json:"name"`
	Role sec.UserRole `json:"role"`
}

// State is the terminal view model.
type State struct {
	View      View      `json:"view"`
	Identity  *Identity `json:"identity,omitempty"`
	Connected bool      `json:"connected"`
}

// Initial is the state of a freshly opened terminal.
func Initial() State {
	return State{View: ViewWelcome}
}

// # Events

// Event is something the terminal reacts to.
type Event interface {
	apply(state State) State
}

type (
	Connected     struct{}
	Disconnected  struct{}
	StartForm     struct{}
	Submitted     struct{}
	BackToWelcome struct{}
	OpenLogin     struct{}
	OpenDashboard struct{}
	LoggedOut     struct{}

	// LoggedIn carries the identity returned by a successful login.
	LoggedIn struct{ Identity Identity }
)

func (Connected) apply(state State) State    { state.Connected = true; return state }
func (Disconnected) apply(state State) State { state.Connected = false; return state }
func (StartForm) apply(state State) State    { state.View = ViewForm; return state }
func (BackToWelcome) apply(state State) State {
	state.View = ViewWelcome
	return state
}
func (OpenLogin) apply(state State) State     { state.View = ViewLogin; return state }
func (OpenDashboard) apply(state State) State { state.View = ViewDashboard; return state }

func (Submitted) apply(state State) State {
	if state.Connected {
		state.View = ViewSuccess
	} else {
		state.View = ViewForm
	}
	return state
}

func (event LoggedIn) apply(state State) State {
	identity := event.Identity
	state.Identity = &identity
	state.View = ViewDashboard
	return state
}

func (LoggedOut) apply(state State) State {
	state.Identity = nil
	state.View = ViewLogin
	return state
}

// # Reducer

// Reduce applies event and resolves the gates. A nil event only resolves.
func Reduce(state State, event Event) State {
	if event != nil {
		state = event.apply(state)
	}
	return Resolve(state)
}

// Resolve enforces the view gates on state.
func Resolve(state State) State {
	switch state.View {
	case ViewDashboard:
		if state.Identity == nil || !state.Identity.Role.IsStaff() {
			state.View = ViewLogin
		}
	case ViewWelcome, ViewForm, ViewSuccess, ViewLogin:
	default:
		state.View = ViewWelcome
	}
	return state
}

// ParseEvent maps an event name to an [Event]. LoggedIn is built from the
// caller's verified identity, so a name alone cannot grant the dashboard.
func ParseEvent(name string, identity *Identity) (Event, bool) {
	switch name {
	case "":
		return nil, true
	case "connected":
		return Connected{}, true
	case "disconnected":
		return Disconnected{}, true
	case "start_form":
		return StartForm{}, true
	case "submitted":
		return Submitted{}, true
	case "back_to_welcome":
		return BackToWelcome{}, true
	case "open_login":
		return OpenLogin{}, true
	case "open_dashboard":
		return OpenDashboard{}, true
	case "logged_out":
		return LoggedOut{}, true
	case "logged_in":
		if identity == nil {
			return OpenLogin{}, true
		}
		return LoggedIn{Identity: *identity}, true
	default:
		return nil, false
	}
}
