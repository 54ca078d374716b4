// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/audiencia/internal/directory"
	"github.com/taibuivan/audiencia/internal/grouping"
	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/internal/platform/events"
	"github.com/taibuivan/audiencia/internal/platform/metrics"
	"github.com/taibuivan/audiencia/internal/platform/middleware"
	requestutil "github.com/taibuivan/audiencia/internal/platform/request"
	"github.com/taibuivan/audiencia/internal/platform/respond"
	"github.com/taibuivan/audiencia/internal/platform/sec"
	"github.com/taibuivan/audiencia/internal/registration"
)

const subscriberBuffer = 16

// Handler upgrades dashboard connections and keeps them fed.
type Handler struct {
	registrations Registrations
	directory     Directory
	hub           *events.Hub
	metrics       *metrics.Metrics
	origins       []string
	logger        *slog.Logger
}

// NewHandler constructs a new feed [Handler]. origins are host patterns
// accepted in addition to the request host.
func NewHandler(registrations Registrations, dir Directory, hub *events.Hub, m *metrics.Metrics, origins []string, logger *slog.Logger) *Handler {
	return &Handler{
		registrations: registrations,
		directory:     dir,
		hub:           hub,
		metrics:       m,
		origins:       origins,
		logger:        logger,
	}
}

// Routes returns a [chi.Router] with the feed endpoint.
//
// # Endpoints
//   - GET / : WebSocket, ?date=YYYY-MM-DD, auxiliar or admin.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireRole(sec.RoleAuxiliar)).Get("/", handler.stream)
	return router
}

/*
GET /api/v1/feed?date=2024-03-04.

Description: Upgrades to a WebSocket, pushes the grouped day at once and
again after each change or day selection. The socket closes when the client
leaves, a write stalls past the stream timeout or the server shuts down.
*/
func (handler *Handler) stream(writer http.ResponseWriter, request *http.Request) {
	loc := handler.registrations.Location()
	midnight, err := requestutil.Day(request, "date", loc)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	claims := requestutil.Claims(request)
	isAdmin := claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleAdmin)

	// Lift the server deadlines for the lifetime of the socket.
	controller := http.NewResponseController(writer)
	_ = controller.SetReadDeadline(time.Time{})
	_ = controller.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(writer, request, &websocket.AcceptOptions{OriginPatterns: handler.origins})
	if err != nil {
		return
	}

	context, cancel := context.WithCancel(request.Context())
	defer cancel()

	// 1. Subscribe before the first read so no change slips between them
	subscription := handler.hub.Subscribe(subscriberBuffer)
	defer handler.hub.Unsubscribe(subscription)

	handler.metrics.SubscriberJoined()
	defer handler.metrics.SubscriberLeft()

	// 2. Initial state
	state := grouping.Reduce(grouping.State[registration.Registration]{}, grouping.DateSelected{Day: grouping.DayOf(midnight, loc)}, loc)
	if !handler.pushDay(context, conn, &state) {
		return
	}
	if isAdmin && !handler.pushDirectory(context, conn) {
		return
	}

	// 3. Day selections arrive on the socket; a read error ends the stream
	selections := make(chan grouping.Day)
	readErr := make(chan error, 1)
	go handler.readSelections(context, conn, selections, readErr)

	for {
		select {
		case <-context.Done():
			_ = conn.Close(websocket.StatusGoingAway, "closed")
			return
		case <-readErr:
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case day := <-selections:
			state = grouping.Reduce(state, grouping.DateSelected{Day: day}, loc)
			if !handler.pushDay(context, conn, &state) {
				return
			}
		case evt, ok := <-subscription:
			if !ok {
				_ = conn.Close(websocket.StatusGoingAway, "shutting down")
				return
			}

			var delivered bool
			switch evt.Kind {
			case events.KindRegistrationCreated:
				delivered = handler.pushDay(context, conn, &state)
			case events.KindTaxonomyUpdated:
				delivered = handler.write(context, conn, Frame{Kind: FrameTaxonomy})
			case events.KindDirectoryChanged:
				delivered = !isAdmin || handler.pushDirectory(context, conn)
			default:
				delivered = true
			}
			if !delivered {
				return
			}
		}
	}
}

// readSelections forwards every valid day selection. Malformed messages are skipped.
func (handler *Handler) readSelections(context context.Context, conn *websocket.Conn, selections chan<- grouping.Day, readErr chan<- error) {
	for {
		_, payload, err := conn.Read(context)
		if err != nil {
			readErr <- err
			return
		}

		var selection Selection
		if err := json.Unmarshal(payload, &selection); err != nil {
			handler.logger.DebugContext(context, "feed_selection_malformed", slog.String("error", err.Error()))
			continue
		}
		day, err := grouping.ParseDay(selection.Date)
		if err != nil {
			handler.logger.DebugContext(context, "feed_selection_malformed", slog.String("error", err.Error()))
			continue
		}

		select {
		case selections <- day:
		case <-context.Done():
			return
		}
	}
}

// pushDay reloads the selected day, reduces it into state and sends the groups.
func (handler *Handler) pushDay(context context.Context, conn *websocket.Conn, state *grouping.State[registration.Registration]) bool {
	records, err := handler.registrations.Snapshot(context, state.Day)
	if err != nil {
		handler.logger.WarnContext(context, "feed_day_read_failed", slog.String("error", err.Error()))
		_ = conn.Close(websocket.StatusTryAgainLater, "store unavailable")
		return false
	}

	*state = grouping.Reduce(*state, grouping.FeedSnapshot[registration.Registration]{Records: records}, handler.registrations.Location())
	return handler.write(context, conn, registrationsFrame(state.Groups))
}

func (handler *Handler) pushDirectory(context context.Context, conn *websocket.Conn) bool {
	pending, err := handler.directory.List(context, string(directory.StatusPending))
	if err != nil {
		handler.logger.WarnContext(context, "feed_directory_read_failed", slog.String("error", err.Error()))
		_ = conn.Close(websocket.StatusTryAgainLater, "store unavailable")
		return false
	}
	return handler.write(context, conn, directoryFrame(pending))
}

func (handler *Handler) write(ctx context.Context, conn *websocket.Conn, frame Frame) bool {
	writeCtx, cancel := context.WithTimeout(ctx, constants.StreamWriteTimeout)
	defer cancel()

	if err := wsjson.Write(writeCtx, conn, frame); err != nil {
		_ = conn.Close(websocket.StatusPolicyViolation, "write stalled")
		return false
	}
	return true
}
