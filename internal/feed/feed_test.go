// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/audiencia/internal/causa"
	"github.com/taibuivan/audiencia/internal/directory"
	"github.com/taibuivan/audiencia/internal/feed"
	"github.com/taibuivan/audiencia/internal/platform/ctxutil"
	"github.com/taibuivan/audiencia/internal/platform/events"
	"github.com/taibuivan/audiencia/internal/platform/sec"
	"github.com/taibuivan/audiencia/internal/registration"
	"github.com/taibuivan/audiencia/internal/taxonomy"
)

var courthouse = time.FixedZone("CST", -6*60*60)

type fixture struct {
	server        *httptest.Server
	hub           *events.Hub
	registrations *registration.Service
	directory     *directory.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := events.NewHub()

	clock := func() time.Time { return time.Date(2024, 3, 4, 9, 30, 0, 0, courthouse) }
	tax := taxonomy.NewService(taxonomy.NewMemoryRepository(), hub, nil, logger)
	registrations := registration.NewService(registration.NewMemoryRepository(clock), tax, hub, nil, logger, courthouse)
	dir := directory.NewService(directory.NewMemoryRepository(), nil, hub, logger, bcrypt.MinCost)

	handler := feed.NewHandler(registrations, dir, hub, nil, nil, logger)

	// The role travels in a header here; production uses the bearer token.
	withRole := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if role := request.Header.Get("X-Role"); role != "" {
				claims := &sec.AuthClaims{UserID: "staff-1", Role: role}
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	}

	server := httptest.NewServer(withRole(handler.Routes()))
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})

	return fixture{server: server, hub: hub, registrations: registrations, directory: dir}
}

func (f fixture) dial(t *testing.T, role sec.UserRole) *websocket.Conn {
	t.Helper()
	return f.dialDay(t, role, "2024-03-04")
}

func (f fixture) dialDay(t *testing.T, role sec.UserRole, date string) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/?date=" + date
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPHeader: http.Header{"X-Role": []string{string(role)}},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

func next(t *testing.T, conn *websocket.Conn) feed.Frame {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var frame feed.Frame
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	return frame
}

func raw(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, payload, err := conn.Read(ctx)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &fields))
	return fields
}

func selectDate(t *testing.T, conn *websocket.Conn, date string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, wsjson.Write(ctx, conn, feed.Selection{Date: date}))
}

func anaLopez() causa.Form {
	return causa.Form{
		FullName:    "ANA LOPEZ",
		Phone:       "55512345",
		Email:       "a@a.com",
		CausaCode:   "16004",
		CausaYear:   "2024",
		CausaNumber: "7",
		Subject:     "SINDICADO",
	}
}

/*
TestStream_PushesDayOnConnectAndOnChange sends the grouped day, then regroups after a submission.
*/
func TestStream_PushesDayOnConnectAndOnChange(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t, sec.RoleAuxiliar)

	initial := next(t, conn)
	assert.Equal(t, feed.FrameRegistrations, initial.Kind)
	assert.Equal(t, "2024-03-04", initial.Day)
	assert.Zero(t, initial.Total)

	_, err := f.registrations.Submit(context.Background(), anaLopez())
	require.NoError(t, err)

	updated := next(t, conn)
	assert.Equal(t, feed.FrameRegistrations, updated.Kind)
	assert.Equal(t, 1, updated.Total)
	require.Len(t, updated.Groups, 1)
	assert.Equal(t, "[C-16004] - [2024] - [00007]", updated.Groups[0].Causa)
	assert.Equal(t, []string{"a@a.com"}, updated.Groups[0].Emails)
}

/*
TestStream_SelectedDayDrivesGroups regroups for the day the dashboard picks and keeps it for later changes.
*/
func TestStream_SelectedDayDrivesGroups(t *testing.T) {
	f := newFixture(t)

	_, err := f.registrations.Submit(context.Background(), anaLopez())
	require.NoError(t, err)

	conn := f.dialDay(t, sec.RoleAuxiliar, "2024-03-05")
	tuesday := next(t, conn)
	assert.Equal(t, "2024-03-05", tuesday.Day)
	assert.Zero(t, tuesday.Total)

	// Malformed selections are skipped without closing the socket.
	require.NoError(t, conn.Write(context.Background(), websocket.MessageText, []byte("not json")))
	selectDate(t, conn, "04-03-2024")
	selectDate(t, conn, "2024-03-04")

	monday := next(t, conn)
	assert.Equal(t, "2024-03-04", monday.Day)
	assert.Equal(t, 1, monday.Total)
	require.Len(t, monday.Groups, 1)

	second := anaLopez()
	second.Email = "b@b.com"
	_, err = f.registrations.Submit(context.Background(), second)
	require.NoError(t, err)

	updated := next(t, conn)
	assert.Equal(t, "2024-03-04", updated.Day)
	assert.Equal(t, 2, updated.Total)
	require.Len(t, updated.Groups, 1)
	assert.Equal(t, []string{"b@b.com", "a@a.com"}, updated.Groups[0].Emails)
}

/*
TestStream_EmptyFramesKeepTheirShape sends zero totals and empty lists instead of dropping the keys.
*/
func TestStream_EmptyFramesKeepTheirShape(t *testing.T) {
	f := newFixture(t)
	admin := f.dial(t, sec.RoleAdmin)

	day := raw(t, admin)
	assert.JSONEq(t, `"registrations"`, string(day["kind"]))
	assert.JSONEq(t, `"2024-03-04"`, string(day["day"]))
	assert.JSONEq(t, `0`, string(day["total"]))
	assert.JSONEq(t, `[]`, string(day["groups"]))
	assert.NotContains(t, day, "pending")

	dir := raw(t, admin)
	assert.JSONEq(t, `"directory"`, string(dir["kind"]))
	assert.JSONEq(t, `[]`, string(dir["pending"]))
	assert.NotContains(t, dir, "total")
}

/*
TestStream_DirectoryFramesOnlyForAdmin keeps pending staff requests away from clerks.
*/
func TestStream_DirectoryFramesOnlyForAdmin(t *testing.T) {
	f := newFixture(t)

	clerk := f.dial(t, sec.RoleAuxiliar)
	assert.Equal(t, feed.FrameRegistrations, next(t, clerk).Kind)

	admin := f.dial(t, sec.RoleAdmin)
	assert.Equal(t, feed.FrameRegistrations, next(t, admin).Kind)
	empty := next(t, admin)
	assert.Equal(t, feed.FrameDirectory, empty.Kind)
	assert.Empty(t, empty.Pending)

	_, err := f.directory.RequestAccess(context.Background(), directory.AccessRequest{
		Name: "Carla Ruiz", Email: "carla@juzgado.gob.gt", Password: "secreto-1",
	})
	require.NoError(t, err)

	pending := next(t, admin)
	assert.Equal(t, feed.FrameDirectory, pending.Kind)
	require.Len(t, pending.Pending, 1)
	assert.Equal(t, "carla@juzgado.gob.gt", pending.Pending[0].Email)

	// The clerk's next frame is the registration that follows, not the directory change.
	_, err = f.registrations.Submit(context.Background(), anaLopez())
	require.NoError(t, err)
	assert.Equal(t, feed.FrameRegistrations, next(t, clerk).Kind)
}

/*
TestStream_RequiresStaff rejects anonymous upgrades before the handshake.
*/
func TestStream_RequiresStaff(t *testing.T) {
	f := newFixture(t)

	response, err := http.Get(f.server.URL + "/")
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

/*
TestStream_InvalidDate rejects a malformed date before the handshake.
*/
func TestStream_InvalidDate(t *testing.T) {
	f := newFixture(t)

	request, err := http.NewRequest(http.MethodGet, f.server.URL+"/?date=04-03-2024", nil)
	require.NoError(t, err)
	request.Header.Set("X-Role", string(sec.RoleAuxiliar))

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}
