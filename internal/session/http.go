// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/audiencia/internal/platform/apperr"
	requestutil "github.com/taibuivan/audiencia/internal/platform/request"
	"github.com/taibuivan/audiencia/internal/platform/respond"
	"github.com/taibuivan/audiencia/internal/platform/sec"
)

// ReadinessFunc reports whether the stores a submission needs are reachable.
type ReadinessFunc func(context context.Context) error

// Handler resolves terminal state for the kiosk shell.
type Handler struct {
	ready ReadinessFunc
}

// NewHandler constructs a new session [Handler].
func NewHandler(ready ReadinessFunc) *Handler {
	return &Handler{ready: ready}
}

// Routes returns a [chi.Router] with the session endpoint.
//
// # Endpoints
//   - GET / : ?view=<current>&event=<name>, public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.resolve)
	return router
}

/*
GET /api/v1/session?view=dashboard&event=open_dashboard.

Description: Connectivity comes from a readiness check of the stores and the
identity from the verified bearer token, never from the client.

Response:
  - 200: State
  - 400: VALIDATION_ERROR: Unknown event
*/
func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	identity := identityOf(requestutil.Claims(request))

	event, ok := ParseEvent(query.Get("event"), identity)
	if !ok {
		respond.Error(writer, request, apperr.ValidationError("Invalid request data",
			apperr.FieldError{Field: "event", Message: "Unknown event"}))
		return
	}

	state := State{
		View:      View(query.Get("view")),
		Identity:  identity,
		Connected: handler.ready(request.Context()) == nil,
	}
	if state.View == "" {
		state.View = ViewWelcome
	}

	respond.OK(writer, Reduce(state, event))
}

func identityOf(claims *sec.AuthClaims) *Identity {
	if claims == nil {
		return nil
	}
	return &Identity{Name: claims.Name, Role: sec.UserRole(claims.Role)}
}
