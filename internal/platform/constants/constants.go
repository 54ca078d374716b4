// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers, token lifetimes and Redis key prefixes.
  - Kiosk: Sentinels and role subsets used by the intake form.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "audiencia-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StreamWriteTimeout bounds a single push to a live feed subscriber.
	StreamWriteTimeout = 5 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "audiencia.kiosk"

	// AccessTokenTTL is the lifetime of a staff access token. A working day.
	AccessTokenTTL = 10 * time.Hour

	// BreakGlassSubject is the fixed subject id of the administrative bypass identity.
	BreakGlassSubject = "admin-sys"

	// BreakGlassDisplayName is shown on the dashboard for the bypass identity.
	BreakGlassDisplayName = "Administrador"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaKiosk = "kiosk"
	SchemaStaff = "staff"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRevokedToken   = "auth:revoked_jti:"
	RedisPrefixRevokedSubject = "auth:revoked_sub:"
	RedisChannelEvents        = "kiosk:events"
)

// # Kiosk Vocabulary

const (
	// CustomSentinel is the picklist value meaning "the operator typed a custom value".
	CustomSentinel = "PERSONALIZAR"

	// RegistrationStatusActive is the only status written by intake.
	RegistrationStatusActive = "active"

	// DefaultTimezone is the courthouse local zone used to compute calendar days.
	DefaultTimezone = "America/Guatemala"

	// CodeWidth is the fixed width of court codes and process numbers.
	CodeWidth = 5
)
