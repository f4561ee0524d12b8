// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

// Package auth implements its session storage on Redis.
//
// # Key Layout
//
//   - auth:session:{tokenHash}       JSON-encoded [Session], TTL = time to ExpiresAt
//   - auth:user_sessions:{userID}    Set of the user's live token hashes
//
// Expiry needs no sweeper: Redis drops the session key on its own, and
// stale entries in the per-user set are skipped on read and pruned on
// bulk revocation.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func userSessionsKey(userID string) string {
	return constants.RedisPrefixUserSessions + userID
}

/*
Create persists a new session keyed by its refresh-token hash.

Description: The session key carries a TTL matching ExpiresAt, and the
token hash is added to the owner's session set so bulk revocation can
find it later.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Encoding or storage failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, sessionKey(session.TokenHash), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	// Track membership for RevokeOthers. The set outlives individual keys,
	// so it carries the same TTL as the longest-lived session in it.
	pipe := repository.client.Pipeline()
	pipe.SAdd(context, userSessionsKey(session.UserID), session.TokenHash)
	pipe.Expire(context, userSessionsKey(session.UserID), ttl)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_track_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash resolves a refresh-token hash into its live session.

Description: A missing key means the session was revoked or aged out;
both surface as apperr.NotFound.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {

	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session not found or expired")
		}
		return nil, fmt.Errorf("redis_session_find_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return session, nil
}

/*
Revoke removes the session behind the token hash.

Description: Deleting an absent key is a no-op, which keeps logout
idempotent.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {

	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		if apperr.As(err) != nil {
			return nil
		}
		return err
	}

	pipe := repository.client.Pipeline()
	pipe.Del(context, sessionKey(tokenHash))
	pipe.SRem(context, userSessionsKey(session.UserID), tokenHash)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeOthers removes every session of the user except the current one.

Parameters:
  - context: context.Context
  - userID: string
  - currentTokenHash: string

Returns:
  - error: Enumeration or deletion failures
*/
func (repository *RedisSessionRepository) RevokeOthers(context context.Context, userID, currentTokenHash string) error {

	hashes, err := repository.client.SMembers(context, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis_session_revoke_others_failed: %w", err)
	}

	var others []string
	for _, hash := range hashes {
		if hash != currentTokenHash {
			others = append(others, hash)
		}
	}
	if len(others) == 0 {
		return nil
	}

	pipe := repository.client.Pipeline()
	for _, hash := range others {
		pipe.Del(context, sessionKey(hash))
		pipe.SRem(context, userSessionsKey(userID), hash)
	}
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_revoke_others_failed: %w", err)
	}

	return nil
}
