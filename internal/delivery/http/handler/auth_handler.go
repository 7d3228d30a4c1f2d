package handler

import (
	"time"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	uc      usecase.AuthUsecase
	session *middleware.SessionMiddleware
	cookie  CookieConfig
}

func NewAuthHandler(uc usecase.AuthUsecase, session *middleware.SessionMiddleware, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, session: session, cookie: cookie}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/login", h.HandleLogin)
	r.Get("/signup", h.HandleSignup)
	r.Get("/callback", h.HandleCallback)
	r.Post("/logout", h.HandleLogout)
}

func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	return h.redirectToProvider(c, false)
}

func (h *AuthHandler) HandleSignup(c fiber.Ctx) error {
	return h.redirectToProvider(c, true)
}

func (h *AuthHandler) redirectToProvider(c fiber.Ctx, signUp bool) error {
	url, err := h.uc.SignInURL(c.Context(), signUp)
	if err != nil {
		return mapUsecaseError(err)
	}
	return c.Redirect().Status(fiber.StatusFound).To(url)
}

func (h *AuthHandler) HandleCallback(c fiber.Ctx) error {
	sess, err := h.uc.Callback(c.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		return mapUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect().Status(fiber.StatusFound).To("/")
}

func (h *AuthHandler) HandleLogout(c fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), h.session.Token(c)); err != nil {
		return mapUsecaseError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return response.Success(c, fiber.StatusOK, "signed out", nil)
}

// HandleMe is mounted behind RequireViewer.
func (h *AuthHandler) HandleMe(c fiber.Ctx) error {
	v := middleware.ViewerFrom(c)
	if v == nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Sign in required", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewUserResponse(v.User))
}
