package handler

import (
	"time"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc  usecase.JobUsecase
	now func() time.Time
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc, now: time.Now}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.HandleListJobs)
	r.Get("/jobs/:id", h.HandleGetJob)
	r.Get("/orgs/:orgId/jobs", h.HandleListOrgJobs)
}

// RegisterProtectedRoutes expects r to require a signed-in viewer.
func (h *JobsHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs", h.HandleCreateJob)
	r.Put("/jobs/:id", h.HandleUpdateJob)
	r.Delete("/jobs/:id", h.HandleDeleteJob)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	items, err := h.uc.ListRecent(c.Context(), c.Query("q"), middleware.ViewerFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobResponses(items, h.now()))
}

func (h *JobsHandler) HandleListOrgJobs(c fiber.Ctx) error {
	res, err := h.uc.ListByOrg(c.Context(), c.Params("orgId"), middleware.ViewerFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	out := dto.OrgJobsResponse{
		Organization: dto.OrganizationResponse{ID: res.Organization.ID, Name: res.Organization.Name},
		Jobs:         dto.NewJobResponses(res.Jobs, h.now()),
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	j, err := h.uc.Get(c.Context(), c.Params("id"), middleware.ViewerFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobResponse(j, h.now()))
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	saved, err := h.uc.Save(c.Context(), middleware.ViewerFrom(c), "", req.ToEntity())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", dto.NewJobResponse(saved, h.now()))
}

func (h *JobsHandler) HandleUpdateJob(c fiber.Ctx) error {
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	saved, err := h.uc.Save(c.Context(), middleware.ViewerFrom(c), c.Params("id"), req.ToEntity())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "updated", dto.NewJobResponse(saved, h.now()))
}

func (h *JobsHandler) HandleDeleteJob(c fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), middleware.ViewerFrom(c), c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "deleted", nil)
}
