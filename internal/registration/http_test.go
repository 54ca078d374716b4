// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/audiencia/internal/platform/ctxutil"
	"github.com/taibuivan/audiencia/internal/platform/sec"
	"github.com/taibuivan/audiencia/internal/registration"
)

// asStaff injects claims the way the authentication middleware would.
func asStaff(role sec.UserRole, next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if role != "" {
			claims := &sec.AuthClaims{UserID: "staff-1", Role: string(role)}
			request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
		}
		next.ServeHTTP(writer, request)
	})
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_SubmitIsPublic(t *testing.T) {
	f := newFixture(t)
	router := asStaff("", registration.NewHandler(f.service).Routes())

	payload := `{"fullName":"ANA LOPEZ","phone":"55512345","email":"a@a.com","causaCode":"16004","causaYear":"2024","causaNumber":"7","subject":"SINDICADO"}`
	recorder := serve(router, http.MethodPost, "/", payload)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Data registration.Registration `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "[C-16004] - [2024] - [00007]", envelope.Data.CausaFull)
	assert.NotContains(t, recorder.Body.String(), "fiscalia")
}

func TestHandler_SubmitValidation(t *testing.T) {
	f := newFixture(t)
	router := asStaff("", registration.NewHandler(f.service).Routes())

	recorder := serve(router, http.MethodPost, "/", `{"fullName":"ANA LOPEZ"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"field":"phone"`)

	recorder = serve(router, http.MethodPost, "/", `{not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_DayRequiresStaff(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Submit(context.Background(), anaLopez())
	require.NoError(t, err)

	anonymous := asStaff("", registration.NewHandler(f.service).Routes())
	assert.Equal(t, http.StatusUnauthorized, serve(anonymous, http.MethodGet, "/?date=2024-03-04", "").Code)

	staff := asStaff(sec.RoleAuxiliar, registration.NewHandler(f.service).Routes())
	recorder := serve(staff, http.MethodGet, "/?date=2024-03-04", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []struct {
			Causa     string   `json:"causa"`
			Emails    []string `json:"emails"`
			Clipboard string   `json:"clipboard"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "[C-16004] - [2024] - [00007]", envelope.Data[0].Causa)
	assert.Equal(t, "a@a.com", envelope.Data[0].Clipboard)
	assert.Equal(t, 1, envelope.Meta.Total)

	assert.Equal(t, http.StatusBadRequest, serve(staff, http.MethodGet, "/?date=04-03-2024", "").Code)
}

func TestHandler_Export(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Submit(context.Background(), anaLopez())
	require.NoError(t, err)

	staff := asStaff(sec.RoleAuxiliar, registration.NewHandler(f.service).Routes())
	recorder := serve(staff, http.MethodGet, "/export?date=2024-03-04", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, registration.CSVContentType, recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "Registros_2024-03-04.csv")
	assert.Contains(t, recorder.Body.String(), `"ANA LOPEZ"`)

	// Archiving is admin only.
	assert.Equal(t, http.StatusForbidden, serve(staff, http.MethodPost, "/export", "").Code)

	admin := asStaff(sec.RoleAdmin, registration.NewHandler(f.service).Routes())
	assert.Equal(t, http.StatusServiceUnavailable, serve(admin, http.MethodPost, "/export", "").Code)
}
