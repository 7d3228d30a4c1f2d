package v1

import (
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Jobs      *handler.JobsHandler
	Companies *handler.CompanyHandler
	Uploads   *handler.UploadHandler
	Auth      *handler.AuthHandler
}

// Register mounts public routes first so the sign-in guard on the
// protected group never shadows them.
func Register(r fiber.Router, h Handlers, session *middleware.SessionMiddleware) {
	if r == nil || session == nil {
		return
	}

	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r)
	}

	protected := r.Group("", session.RequireViewer())

	if h.Auth != nil {
		protected.Get("/me", h.Auth.HandleMe)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterProtectedRoutes(protected)
	}
	if h.Companies != nil {
		h.Companies.RegisterRoutes(protected)
	}
	if h.Uploads != nil {
		h.Uploads.RegisterRoutes(protected)
	}
}
