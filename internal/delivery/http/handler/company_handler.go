package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// RegisterRoutes expects r to require a signed-in viewer.
func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/companies", h.HandleListCompanies)
	r.Post("/companies", h.HandleCreateCompany)
	r.Get("/companies/:orgId/access", h.HandleAccess)
}

func (h *CompanyHandler) HandleListCompanies(c fiber.Ctx) error {
	orgs, err := h.uc.ListCompanies(c.Context(), middleware.ViewerFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, dto.OrganizationResponse{ID: o.ID, Name: o.Name})
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *CompanyHandler) HandleCreateCompany(c fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return bindError(err)
	}

	org, err := h.uc.CreateCompany(c.Context(), middleware.ViewerFrom(c), req.Name)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", dto.OrganizationResponse{ID: org.ID, Name: org.Name})
}

func (h *CompanyHandler) HandleAccess(c fiber.Ctx) error {
	orgID := c.Params("orgId")
	ok, err := h.uc.HasAccess(c.Context(), middleware.ViewerFrom(c), orgID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.AccessResponse{OrgID: orgID, HasAccess: ok})
}
