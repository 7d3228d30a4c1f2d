package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-board/internal/domain/identity"
)

const (
	sessionKeyPrefix = "session:"
	stateKeyPrefix   = "auth:state:"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionRecord struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore keeps signed-in users in Redis keyed by session id.
type SessionStore struct {
	redis *Redis
}

func NewSessionStore(r *Redis) *SessionStore {
	return &SessionStore{redis: r}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, u identity.User, ttl time.Duration) error {
	rec := sessionRecord{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: time.Now().UTC(),
	}
	return s.redis.SetJSON(ctx, sessionKeyPrefix+sessionID, rec, ttl)
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (identity.User, error) {
	if strings.TrimSpace(sessionID) == "" {
		return identity.User{}, ErrSessionNotFound
	}
	var rec sessionRecord
	ok, err := s.redis.GetJSON(ctx, sessionKeyPrefix+sessionID, &rec)
	if err != nil {
		return identity.User{}, err
	}
	if !ok || rec.UserID == "" {
		return identity.User{}, ErrSessionNotFound
	}
	return identity.User{ID: rec.UserID, Email: rec.Email, FirstName: rec.FirstName, LastName: rec.LastName}, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Delete(ctx, sessionKeyPrefix+sessionID)
}

// RememberState stores a one-time sign-in state value.
func (s *SessionStore) RememberState(ctx context.Context, state string, ttl time.Duration) error {
	ok, err := s.redis.SetIfNotExists(ctx, stateKeyPrefix+state, "1", ttl)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("duplicate auth state")
	}
	return nil
}

// ConsumeState reports whether state was issued and not yet used.
func (s *SessionStore) ConsumeState(ctx context.Context, state string) (bool, error) {
	if strings.TrimSpace(state) == "" {
		return false, nil
	}
	return s.redis.Take(ctx, stateKeyPrefix+state)
}
