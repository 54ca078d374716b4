// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/audiencia/internal/platform/apperr"
	"github.com/taibuivan/audiencia/internal/platform/ctxutil"
	"github.com/taibuivan/audiencia/internal/platform/sec"
	"github.com/taibuivan/audiencia/internal/platform/validate"
)

// dateLayout is the wire format of calendar day query parameters.
const dateLayout = "2006-01-02"

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Day reads a YYYY-MM-DD query parameter as a calendar day in loc.

An absent parameter yields today in loc.

Returns:
  - time.Time: Midnight of the selected day in loc
  - error: apperr.ValidationError when the value is malformed
*/
func Day(request *http.Request, name string, loc *time.Location) (time.Time, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}

	var validator validate.Validator
	validator.Date(name, raw)
	if err := validator.Err(); err != nil {
		return time.Time{}, err
	}

	day, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, apperr.ValidationError("Invalid request data", apperr.FieldError{Field: name, Message: "must be a valid date (YYYY-MM-DD)"})
	}
	return day, nil
}

/*
Claims extracts the authenticated staff claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the staff claims.

Returns:
  - *sec.AuthClaims: The authenticated staff claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get staff claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the staff member is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}
