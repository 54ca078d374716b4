// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/audiencia/internal/platform/respond"
)

// Handler serves the picklists to kiosks and dashboards.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the public taxonomy read.
//
// # Endpoints
//   - GET / : Current subjects and court codes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.get)
	return router
}

/*
Get returns the picklists.

GET /api/v1/taxonomy

Response:
  - 200: Snapshot: {subjects, courtCodes, version}
  - 503: TRANSIENT_IO: Store unavailable
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	snapshot, err := handler.service.Snapshot(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, snapshot)
}
