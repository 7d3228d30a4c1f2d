package app

import (
	"fmt"
	"strings"

	"job-board/internal/config"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/delivery/http/routes"
	v1 "job-board/internal/delivery/http/routes/v1"
	"job-board/internal/pkg/jwt"
	"job-board/internal/pkg/validation"
	"job-board/internal/usecase"
	ucjob "job-board/internal/usecase/job"
	"job-board/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

func New(c *Container) *App {
	cfg := c.Config

	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		BodyLimit:       int(cfg.Upload.MaxBytes) + 1<<20,
		StructValidator: validation.New(),
	})

	hub := ws.NewHub(c.Logger)
	go hub.Run()

	jwtSvc := jwt.NewHMACService(cfg.Session.Secret, cfg.Session.TTL, cfg.App.AppName)

	enricher := ucjob.NewEnricher(c.Identity, c.Identity, cfg.Enricher.MaxConcurrentLookups)
	jobsUC := usecase.NewJobUsecase(c.Jobs, enricher, c.Identity, c.Identity, hub, c.Logger)
	companiesUC := usecase.NewCompanyUsecase(c.Identity, c.Identity, c.Logger)
	authUC := usecase.NewAuthUsecase(c.Identity, c.Sessions, jwtSvc, cfg.Session.TTL, c.Logger)
	uploadsUC := usecase.NewUploadUsecase(c.Uploads, c.Logger)

	session := middleware.NewSessionMiddleware(authUC, cfg.Session.CookieName)
	authHandler := handler.NewAuthHandler(authUC, session, handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	})

	registerGlobalMiddleware(f, c, session)

	reg := &routes.Registry{
		Health:  handler.NewHealthHandler(c.Store, map[string]handler.Pinger{"sessions": c.Redis}),
		Auth:    authHandler,
		Session: session,
		WS:      ws.NewHandler(hub, c.Logger),
		V1: v1.Handlers{
			Jobs:      handler.NewJobsHandler(jobsUC),
			Companies: handler.NewCompanyHandler(companiesUC),
			Uploads:   handler.NewUploadHandler(uploadsUC),
			Auth:      authHandler,
		},
		UploadDir:    c.Uploads.Dir(),
		UploadPrefix: c.Uploads.PublicPrefix(),
	}
	reg.Register(f)

	return &App{Fiber: f, Hub: hub}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// stops the hub and closes every connection.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	cleanup := func() error {
		app.Hub.Stop()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container, session *middleware.SessionMiddleware) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(session.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
