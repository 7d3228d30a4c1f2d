package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"job-board/internal/domain/identity"
	"job-board/internal/pkg/jwt"

	"github.com/google/uuid"
)

const authStateTTL = 10 * time.Minute

var (
	ErrInvalidState   = errors.New("invalid auth state")
	ErrSessionExpired = errors.New("session expired")
)

type SessionStore interface {
	Save(ctx context.Context, sessionID string, u identity.User, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (identity.User, error)
	Delete(ctx context.Context, sessionID string) error
	RememberState(ctx context.Context, state string, ttl time.Duration) error
	ConsumeState(ctx context.Context, state string) (bool, error)
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      identity.User
}

type AuthUsecase interface {
	SignInURL(ctx context.Context, signUp bool) (string, error)
	Callback(ctx context.Context, code, state string) (Session, error)
	Logout(ctx context.Context, token string) error
	ResolveViewer(ctx context.Context, token string) (*identity.Viewer, error)
}

type Auth struct {
	provider identity.Authenticator
	sessions SessionStore
	jwt      jwt.Service
	ttl      time.Duration
	logger   *log.Logger
}

var _ AuthUsecase = (*Auth)(nil)

func NewAuthUsecase(provider identity.Authenticator, sessions SessionStore, jwtSvc jwt.Service, ttl time.Duration, logger *log.Logger) *Auth {
	return &Auth{provider: provider, sessions: sessions, jwt: jwtSvc, ttl: ttl, logger: logger}
}

func (u *Auth) SignInURL(ctx context.Context, signUp bool) (string, error) {
	state := uuid.NewString()
	if err := u.sessions.RememberState(ctx, state, authStateTTL); err != nil {
		u.logf("[Auth] remember state failed err=%v", err)
		return "", ErrInternal
	}
	url, err := u.provider.AuthorizationURL(state, signUp)
	if err != nil {
		u.logf("[Auth] authorization url failed err=%v", err)
		return "", ErrInternal
	}
	return url, nil
}

// Callback completes a provider sign-in and opens a new session.
func (u *Auth) Callback(ctx context.Context, code, state string) (Session, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Session{}, ErrInvalidInput
	}

	ok, err := u.sessions.ConsumeState(ctx, strings.TrimSpace(state))
	if err != nil {
		u.logf("[Auth] consume state failed err=%v", err)
		return Session{}, ErrInternal
	}
	if !ok {
		return Session{}, ErrInvalidState
	}

	usr, err := u.provider.AuthenticateWithCode(ctx, code)
	if err != nil {
		u.logf("[Auth] code exchange failed err=%v", err)
		return Session{}, ErrUnauthorized
	}

	sid := uuid.NewString()
	if err := u.sessions.Save(ctx, sid, usr, u.ttl); err != nil {
		u.logf("[Auth] save session failed user_id=%s err=%v", usr.ID, err)
		return Session{}, ErrInternal
	}

	token, exp, err := u.jwt.GenerateSessionToken(sid, usr.ID, usr.Email)
	if err != nil {
		_ = u.sessions.Delete(ctx, sid)
		return Session{}, ErrInternal
	}

	u.logf("[Auth] signed in user_id=%s", usr.ID)
	return Session{Token: token, ExpiresAt: exp, User: usr}, nil
}

// Logout drops the server side session. Unknown or expired tokens are not
// an error.
func (u *Auth) Logout(ctx context.Context, token string) error {
	claims, err := u.jwt.ValidateToken(token)
	if err != nil {
		return nil
	}
	if err := u.sessions.Delete(ctx, claims.SessionID); err != nil {
		u.logf("[Auth] delete session failed sid=%s err=%v", claims.SessionID, err)
		return ErrInternal
	}
	return nil
}

func (u *Auth) ResolveViewer(ctx context.Context, token string) (*identity.Viewer, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrUnauthorized
	}

	usr, err := u.sessions.Load(ctx, claims.SessionID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if usr.ID != claims.UserID {
		return nil, ErrUnauthorized
	}

	return &identity.Viewer{User: usr, SessionID: claims.SessionID}, nil
}

func (u *Auth) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
