package routes

import (
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	v1 "job-board/internal/delivery/http/routes/v1"
	"job-board/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type Registry struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Session *middleware.SessionMiddleware
	WS      *ws.Handler
	V1      v1.Handlers

	UploadDir    string
	UploadPrefix string
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerUploads(app)
	r.registerAuth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerUploads(app *fiber.App) {
	if r.UploadDir == "" || r.UploadPrefix == "" {
		return
	}
	app.Get(r.UploadPrefix+"*", static.New(r.UploadDir, static.Config{Browse: false}))
}

func (r *Registry) registerAuth(app *fiber.App) {
	if r.Auth != nil {
		r.Auth.RegisterRoutes(app.Group("/auth"))
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS != nil {
		app.Get("/ws/jobs", r.WS.HandleJobsWS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.V1, r.Session)
}
