package handler

import (
	"errors"

	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/pkg/validation"
	"job-board/internal/usecase"
	ucjob "job-board/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var lookupErr *ucjob.UpstreamLookupError
	switch {
	case errors.As(err, &lookupErr):
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized), errors.Is(err, usecase.ErrSessionExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Sign in required", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "No access to this organization", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func bindError(err error) error {
	if fields := validation.FieldErrors(err); fields != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", fields, err)
	}
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
