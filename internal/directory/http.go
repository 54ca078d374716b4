// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/audiencia/internal/platform/middleware"
	requestutil "github.com/taibuivan/audiencia/internal/platform/request"
	"github.com/taibuivan/audiencia/internal/platform/respond"
	"github.com/taibuivan/audiencia/internal/platform/sec"
	"github.com/taibuivan/audiencia/internal/platform/validate"
)

// Handler serves access requests and the administrator directory views.
type Handler struct {
	service *Service
}

// NewHandler constructs a new directory [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the directory endpoints.
//
// # Endpoints
//   - POST   /requests      : Public sign-up, creates a pending entry.
//   - GET    /              : Admin, ?status=pending|active.
//   - POST   /{id}/approve  : Admin.
//   - DELETE /{id}          : Admin, rejects a pending or active entry.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/requests", handler.requestAccess)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/", handler.list)
		admin.Post("/{id}/approve", handler.approve)
		admin.Delete("/{id}", handler.reject)
	})

	return router
}

/*
POST /api/v1/directory/requests.

Request:
  - Body: AccessRequest (name, email, password)

Response:
  - 201: Entry: status pending
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) requestAccess(writer http.ResponseWriter, request *http.Request) {
	var input AccessRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.RequestAccess(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
GET /api/v1/directory?status=pending|active.

Response:
  - 200: []Entry with meta.total
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.List(request.Context(), request.URL.Query().Get(FieldStatus))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, entries, len(entries))
}

/*
POST /api/v1/directory/{id}/approve.

Response:
  - 200: Entry: status active
  - 404: NOT_FOUND
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	id, err := entryID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Approve(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
DELETE /api/v1/directory/{id}.

Response:
  - 204: Removed
  - 404: NOT_FOUND
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	id, err := entryID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Reject(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func entryID(request *http.Request) (string, error) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	validator.UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		return "", err
	}
	return id, nil
}
