package middleware

import (
	"context"
	"strings"

	"job-board/internal/domain/identity"

	"github.com/gofiber/fiber/v3"
)

const CtxViewerKey = "viewer"

type viewerResolver interface {
	ResolveViewer(ctx context.Context, token string) (*identity.Viewer, error)
}

// SessionMiddleware attaches the signed-in viewer, if any, to the request.
// The session cookie is preferred; a bearer token is accepted for API
// clients.
type SessionMiddleware struct {
	resolver   viewerResolver
	cookieName string
}

func NewSessionMiddleware(resolver viewerResolver, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{resolver: resolver, cookieName: cookieName}
}

func (m *SessionMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := m.Token(c)
		if token == "" {
			return c.Next()
		}

		viewer, err := m.resolver.ResolveViewer(c.Context(), token)
		if err == nil && viewer != nil {
			c.Locals(CtxViewerKey, viewer)
		}
		return c.Next()
	}
}

// RequireViewer rejects anonymous requests.
func (m *SessionMiddleware) RequireViewer() fiber.Handler {
	return func(c fiber.Ctx) error {
		if ViewerFrom(c) == nil {
			return NewAppError(fiber.StatusUnauthorized, "Sign in required", nil, nil)
		}
		return c.Next()
	}
}

func (m *SessionMiddleware) Token(c fiber.Ctx) string {
	if m.cookieName != "" {
		if v := strings.TrimSpace(c.Cookies(m.cookieName)); v != "" {
			return v
		}
	}
	token, _ := bearerTokenFromHeader(c.Get("Authorization"))
	return token
}

func ViewerFrom(c fiber.Ctx) *identity.Viewer {
	v, _ := c.Locals(CtxViewerKey).(*identity.Viewer)
	return v
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
