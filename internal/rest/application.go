package rest

import (
	"context"
	"net/http"
	"time"

	"shiftHire/domain"
	"shiftHire/internal/middleware"
	"shiftHire/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ApplicationService interface {
		Apply(ctx context.Context, jobID, workerID string) (domain.Application, error)
		ListWorkerApplications(ctx context.Context, workerID string) ([]domain.WorkerApplication, error)
		ListJobApplications(ctx context.Context, jobID, restaurantID string) ([]domain.JobApplication, error)
		UpdateStatus(ctx context.Context, applicationID, restaurantID, status string) error
	}

	ApplicationHandler struct {
		applicationService ApplicationService
		validator          *validator.Validate
		timeout            time.Duration
	}

	ApplicationStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=applied shortlisted interview offered accepted rejected"`
	}
)

func NewApplicationHandler(applicationService ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		validator:          newValidator(),
		timeout:            10 * time.Second,
	}
}

func (h *ApplicationHandler) Apply(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	application, err := h.applicationService.Apply(ctx, c.Param("job_id"), middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) ListWorkerApplications(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	applications, err := h.applicationService.ListWorkerApplications(ctx, middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) ListJobApplications(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	applications, err := h.applicationService.ListJobApplications(ctx, c.Param("job_id"), middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req ApplicationStatusRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return badRequest(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate application status", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.applicationService.UpdateStatus(ctx, c.Param("application_id"), middleware.UserID(c), req.Status); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Application updated successfully"})
}
