package handler

import (
	"context"
	"time"

	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus the state of each dependency. Only
// the job store is critical; a down session store degrades sign-in but not
// browsing.
type HealthHandler struct {
	store   Pinger
	extras  map[string]Pinger
	timeout time.Duration
}

func NewHealthHandler(store Pinger, extras map[string]Pinger) *HealthHandler {
	return &HealthHandler{store: store, extras: extras, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	checks := map[string]string{}
	status := fiber.StatusOK

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			checks["store"] = "down"
			status = fiber.StatusServiceUnavailable
		} else {
			checks["store"] = "up"
		}
	}
	for name, p := range h.extras {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			checks[name] = "down"
		} else {
			checks[name] = "up"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "", checks)
	}
	return response.Success(c, status, response.MessageOK, checks)
}
