package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/webstack-labs/auth-service/internal/models"
	"github.com/webstack-labs/auth-service/internal/repository"
)

// SessionManager issues, resolves and revokes opaque session identifiers.
// The session_id column on the user record is authoritative; Redis holds a
// session:{id} -> user id index with a TTL as a lookup cache, so an
// evicted key never invalidates a live session.
type SessionManager struct {
	userRepo repository.UserRepository
	redis    *redis.Client
	ttl      time.Duration
}

// NewSessionManager creates a SessionManager. redisClient may be nil, in
// which case every lookup goes straight to the store.
func NewSessionManager(userRepo repository.UserRepository, redisClient *redis.Client, ttl time.Duration) *SessionManager {
	return &SessionManager{
		userRepo: userRepo,
		redis:    redisClient,
		ttl:      ttl,
	}
}

// Create generates a fresh session id for the user, overwriting any prior
// session. At most one session per user is live at a time.
func (m *SessionManager) Create(ctx context.Context, user *models.User) (string, error) {
	sessionID := uuid.NewString()

	if user.SessionID != nil && m.redis != nil {
		m.redis.Del(ctx, sessionKey(*user.SessionID))
	}

	// Field-targeted write: only the session column changes, so a
	// password or reset-token update committed since the caller read
	// the record is preserved.
	if err := m.userRepo.SetSessionID(ctx, user.ID, &sessionID); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}
	user.SessionID = &sessionID

	if m.redis != nil {
		if err := m.redis.Set(ctx, sessionKey(sessionID), user.ID, m.ttl).Err(); err != nil {
			return "", fmt.Errorf("failed to index session: %w", err)
		}
	}

	return sessionID, nil
}

// UserFrom resolves a session id to its user. Returns
// repository.ErrNotFound for an empty, unknown or stale id.
func (m *SessionManager) UserFrom(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, repository.ErrNotFound
	}

	if m.redis != nil {
		val, err := m.redis.Get(ctx, sessionKey(sessionID)).Result()
		if err == nil {
			userID, convErr := strconv.ParseInt(val, 10, 64)
			if convErr == nil {
				user, findErr := m.userRepo.FindByID(ctx, userID)
				// The cached id must still match the record; a logout
				// followed by a new login invalidates the old entry.
				if findErr == nil && user.SessionID != nil && *user.SessionID == sessionID {
					return user, nil
				}
			}
		} else if !errors.Is(err, redis.Nil) {
			// Redis being down degrades to store lookups only.
			return m.userRepo.FindBySessionID(ctx, sessionID)
		}
	}

	return m.userRepo.FindBySessionID(ctx, sessionID)
}

// Destroy clears the user's session unconditionally. Clearing an
// already-absent session is not an error.
func (m *SessionManager) Destroy(ctx context.Context, user *models.User) error {
	if m.redis != nil && user.SessionID != nil {
		m.redis.Del(ctx, sessionKey(*user.SessionID))
	}

	// Clear the column even if the caller's copy shows no session; a
	// concurrent login may have set one since the record was read. A
	// session id created after this point but cached stale in redis is
	// caught by the column re-check in UserFrom.
	if err := m.userRepo.SetSessionID(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	user.SessionID = nil
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
