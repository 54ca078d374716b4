// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth is the staff login gate.

A login is resolved in this order:

 1. Break-glass: the configured administrator email and bcrypt hash. It never
    touches the directory and always yields role admin.
 2. Directory: the first entry under the email whose credential matches.
 3. Pending entries are refused with a message distinct from invalid
    credentials, and the bearer token presented with the request, if any,
    is revoked.

Tokens are RS256 JWTs; logout and rejection withdraw them through the Redis
[RevocationStore].
*/
package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/audiencia/internal/directory"
	"github.com/taibuivan/audiencia/internal/platform/apperr"
	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/internal/platform/metrics"
	"github.com/taibuivan/audiencia/internal/platform/sec"
)

// Directory is the lookup the gate needs from the staff directory.
type Directory interface {
	FindByEmail(context context.Context, email string) ([]directory.Entry, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID, name, role string, timeToLive time.Duration) (string, error)
}

// TokenRevoker withdraws a single token.
type TokenRevoker interface {
	RevokeToken(context context.Context, claims *sec.AuthClaims) error
}

// BreakGlass is the administrative bypass identity. An empty hash disables it.
type BreakGlass struct {
	Email        string
	PasswordHash string
}

func (breakGlass BreakGlass) matches(email, password string) bool {
	if breakGlass.Email == "" || breakGlass.PasswordHash == "" {
		return false
	}
	return strings.EqualFold(email, breakGlass.Email) && sec.MatchCredential(password, breakGlass.PasswordHash)
}

// # Session Payloads

// Identity is who the dashboard shows as signed in.
type Identity struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  sec.UserRole `json:"role"`
}

// Session is returned by a successful login.
type Session struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Identity    Identity  `json:"identity"`
}

// LoginInput carries the credentials and the token already presented, if any.
type LoginInput struct {
	Email    string
	Password string

	// Presented is the verified token sent along with the login request.
	Presented *sec.AuthClaims
}

// Service implements login and logout.
type Service struct {
	directory   Directory
	tokens      TokenIssuer
	revocations TokenRevoker
	breakGlass  BreakGlass
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new auth [Service].
func NewService(dir Directory, tokens TokenIssuer, revocations TokenRevoker, breakGlass BreakGlass, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		directory:   dir,
		tokens:      tokens,
		revocations: revocations,
		breakGlass:  breakGlass,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

/*
Login authenticates a staff member.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Signed token and identity
  - error: AUTH_INVALID, AUTH_PENDING or TRANSIENT_IO
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	email := strings.TrimSpace(input.Email)

	// 1. Break-glass identity
	if service.breakGlass.matches(email, input.Password) {
		service.metrics.IncrementLogin(metrics.LoginBreakGlass)
		service.logger.WarnContext(context, "auth_breakglass_login", slog.String("email", email))

		return service.issue(Identity{
			ID:    constants.BreakGlassSubject,
			Name:  constants.BreakGlassDisplayName,
			Email: email,
			Role:  sec.RoleAdmin,
		})
	}

	// 2. Directory lookup
	entries, err := service.directory.FindByEmail(context, email)
	if err != nil {
		return nil, err
	}

	match := firstMatch(entries, input.Password)
	if match == nil {
		service.metrics.IncrementLogin(metrics.LoginInvalid)
		service.logger.InfoContext(context, "auth_login_rejected", slog.String("email", email))
		return nil, apperr.InvalidCredentials()
	}

	// 3. Approval gate
	if match.IsPending() {
		service.metrics.IncrementLogin(metrics.LoginPending)
		service.logger.InfoContext(context, "auth_login_pending", slog.String("entry_id", match.ID))
		service.revokePresented(context, input.Presented)
		return nil, apperr.PendingApproval()
	}

	// 4. Issue
	service.metrics.IncrementLogin(metrics.LoginSuccess)
	service.logger.InfoContext(context, "auth_login_succeeded",
		slog.String("entry_id", match.ID),
		slog.String("role", string(match.Role)),
	)

	return service.issue(Identity{
		ID:    match.ID,
		Name:  match.Name,
		Email: match.Email,
		Role:  match.Role,
	})
}

// Logout revokes the token used for the request. The kiosk itself stays connected.
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {
	if err := service.revocations.RevokeToken(context, claims); err != nil {
		return apperr.TransientIO(err)
	}

	service.logger.InfoContext(context, "auth_logout", slog.String("user_id", claims.UserID))
	return nil
}

func (service *Service) issue(identity Identity) (*Session, error) {
	token, err := service.tokens.GenerateAccessToken(identity.ID, identity.Name, string(identity.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   service.now().Add(constants.AccessTokenTTL).UTC(),
		Identity:    identity,
	}, nil
}

func (service *Service) revokePresented(context context.Context, presented *sec.AuthClaims) {
	if presented == nil {
		return
	}
	if err := service.revocations.RevokeToken(context, presented); err != nil {
		service.logger.WarnContext(context, "auth_pending_revoke_failed", slog.String("error", err.Error()))
	}
}

// firstMatch returns the oldest entry whose credential matches. Unknown
// emails still pay for one bcrypt comparison.
func firstMatch(entries []directory.Entry, password string) *directory.Entry {
	if len(entries) == 0 {
		sec.BurnCompare(password)
		return nil
	}

	for i := range entries {
		if sec.MatchCredential(password, entries[i].CredentialHash) {
			return &entries[i]
		}
	}
	return nil
}
