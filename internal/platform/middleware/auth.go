// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/audiencia/internal/platform/apperr"
	"github.com/taibuivan/audiencia/internal/platform/ctxutil"
	"github.com/taibuivan/audiencia/internal/platform/respond"
	"github.com/taibuivan/audiencia/internal/platform/sec"
)

// accessTokenQuery carries the bearer token for clients that cannot set
// headers, such as a browser opening the live feed socket.
const accessTokenQuery = "access_token"

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// RevocationChecker reports whether a verified token has been withdrawn,
// either by logout (its jti) or by a rejected directory entry (its subject).
type RevocationChecker interface {
	IsRevoked(context context.Context, claims *sec.AuthClaims) (bool, error)
}

// Authenticate extracts and verifies the JWT of a staff member.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>' or the access_token query parameter.
//  2. If absent, the request proceeds as anonymous (the kiosk itself).
//  3. Verify the signature via [TokenVerifier].
//  4. Reject tokens listed by the [RevocationChecker].
//  5. Inject [*sec.AuthClaims] into the request context.
func Authenticate(verifier TokenVerifier, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			tokenStr, present, wellFormed := BearerToken(request)
			if !present {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			if !wellFormed {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Revocation ─────────────────────────────────────────────────
			if revocations != nil {
				revoked, err := revocations.IsRevoked(request.Context(), claims)
				if err != nil {
					ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "revocation_check_failed",
						slog.String("error", err.Error()),
					)
					respond.Error(writer, request, apperr.TransientIO(err))
					return
				}
				if revoked {
					respond.Error(writer, request, apperr.Unauthorized("Token has been revoked"))
					return
				}
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// BearerToken returns the raw token presented with the request.
// present is false when no credential was sent at all; wellFormed is false
// when the Authorization header exists but is not a Bearer credential.
func BearerToken(request *http.Request) (token string, present bool, wellFormed bool) {
	if header := request.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", true, false
		}
		return parts[1], true, true
	}

	if query := request.URL.Query().Get(accessTokenQuery); query != "" {
		return query, true, true
	}

	return "", false, false
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated staff member lacks the role.
//
// Must be registered in the router AFTER [Authenticate]. It implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
