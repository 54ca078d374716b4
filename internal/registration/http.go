// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/audiencia/internal/causa"
	"github.com/taibuivan/audiencia/internal/grouping"
	"github.com/taibuivan/audiencia/internal/platform/middleware"
	requestutil "github.com/taibuivan/audiencia/internal/platform/request"
	"github.com/taibuivan/audiencia/internal/platform/respond"
	"github.com/taibuivan/audiencia/internal/platform/sec"
)

// dateQuery selects the calendar day of a staff read.
const dateQuery = "date"

// Handler serves intake to kiosks and the day view to staff.
type Handler struct {
	service *Service
}

// NewHandler constructs a new registration [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the registration endpoints.
//
// # Routing Strategy
//
//   - Intake (Public): the kiosk posts without credentials.
//   - Staff reads (Auxiliar+): grouped day view and CSV download.
//   - Archive (Admin): stores an export in object storage.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Kiosk Intake
	router.Post("/", handler.submit)

	// ## Staff Reads
	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleAuxiliar))

		staff.Get("/", handler.day)
		staff.Get("/export", handler.export)
	})

	// ## Archive
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/export", handler.archive)
	})

	return router
}

/*
POST /api/v1/registrations.

Request:
  - Body: causa.Form

Response:
  - 201: Registration: Stored record incl. causaFull and createdAt
  - 400: VALIDATION_ERROR: First unmet clause in details[0]
  - 503: TRANSIENT_IO: Store unavailable, nothing was written
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var form causa.Form
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	registration, err := handler.service.Submit(request.Context(), form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, registration)
}

/*
GET /api/v1/registrations?date=YYYY-MM-DD.

Description: Registrations of the day grouped by case key. Without date the
current courthouse day is used.

Response:
  - 200: []grouping.Group with meta.total = registrations of the day
*/
func (handler *Handler) day(writer http.ResponseWriter, request *http.Request) {
	selected, err := selectedDay(request, handler.service.Location())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	groups, err := handler.service.Day(request.Context(), selected)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, groups.List(), groups.Total)
}

/*
GET /api/v1/registrations/export[?date=YYYY-MM-DD].

Description: Downloads the CSV. Without date every registration is exported.

Response:
  - 200: text/csv attachment
*/
func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	day, err := optionalDay(request, handler.service.Location())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body, filename, err := handler.service.Export(request.Context(), day)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Attachment(writer, filename, CSVContentType, body)
}

/*
POST /api/v1/registrations/export[?date=YYYY-MM-DD].

Response:
  - 201: {key}
  - 503: SERVICE_UNAVAILABLE when archiving is not configured
*/
func (handler *Handler) archive(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	day, err := optionalDay(request, handler.service.Location())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	key, err := handler.service.Archive(request.Context(), day, claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"key": key})
}

func selectedDay(request *http.Request, loc *time.Location) (grouping.Day, error) {
	midnight, err := requestutil.Day(request, dateQuery, loc)
	if err != nil {
		return grouping.Day{}, err
	}
	return grouping.DayOf(midnight, loc), nil
}

func optionalDay(request *http.Request, loc *time.Location) (*grouping.Day, error) {
	if request.URL.Query().Get(dateQuery) == "" {
		return nil, nil
	}
	day, err := selectedDay(request, loc)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
