// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/internal/platform/sec"
)

// RevocationStore keeps withdrawn tokens in Redis until they would have
// expired anyway.
//
// # Keys
//
//   - auth:revoked_jti:<jti>     one token (logout, pending login)
//   - auth:revoked_sub:<subject> every token of a subject (rejected entry)
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a Redis-backed [RevocationStore].
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

/*
RevokeToken withdraws a single token for the rest of its lifetime.

Description: Tokens without an id or already expired need no entry.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims

Returns:
  - error: Redis failures
*/
func (store *RevocationStore) RevokeToken(context context.Context, claims *sec.AuthClaims) error {
	ttl := claims.Remaining()
	if claims.TokenID() == "" || ttl <= 0 {
		return nil
	}

	key := constants.RedisPrefixRevokedToken + claims.TokenID()
	if err := store.client.Set(context, key, claims.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoke_token_failed: %w", err)
	}
	return nil
}

/*
RevokeSubject withdraws every token issued to subject during ttl.

Parameters:
  - context: context.Context
  - subject: string (directory entry id)
  - ttl: time.Duration (at least the access token lifetime)

Returns:
  - error: Redis failures
*/
func (store *RevocationStore) RevokeSubject(context context.Context, subject string, ttl time.Duration) error {
	key := constants.RedisPrefixRevokedSubject + subject
	stamp := strconv.FormatInt(time.Now().Unix(), 10)

	if err := store.client.Set(context, key, stamp, ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoke_subject_failed: %w", err)
	}
	return nil
}

// IsRevoked implements [middleware.RevocationChecker].
func (store *RevocationStore) IsRevoked(context context.Context, claims *sec.AuthClaims) (bool, error) {
	keys := []string{constants.RedisPrefixRevokedSubject + claims.UserID}
	if claims.TokenID() != "" {
		keys = append(keys, constants.RedisPrefixRevokedToken+claims.TokenID())
	}

	found, err := store.client.Exists(context, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revocation_check_failed: %w", err)
	}
	return found > 0, nil
}
