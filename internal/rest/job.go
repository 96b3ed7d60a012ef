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
	JobService interface {
		CreateJob(ctx context.Context, restaurantID string, in domain.Job) (domain.Job, error)
		ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
		GetJob(ctx context.Context, id string) (domain.Job, error)
		ListRestaurantJobs(ctx context.Context, restaurantID string) ([]domain.Job, error)
		UpdateJob(ctx context.Context, id, restaurantID string, in domain.Job) (domain.Job, error)
	}

	JobHandler struct {
		jobService JobService
		validator  *validator.Validate
		timeout    time.Duration
	}

	JobRequest struct {
		Title              string   `json:"title" validate:"required"`
		Role               string   `json:"role" validate:"required"`
		LocationCity       string   `json:"location_city" validate:"required"`
		ShiftTiming        string   `json:"shift_timing"`
		ExperienceRequired string   `json:"experience_required"`
		WageMin            float64  `json:"wage_min" validate:"gte=0"`
		WageMax            float64  `json:"wage_max" validate:"gtefield=WageMin"`
		Description        string   `json:"description"`
		Requirements       []string `json:"requirements"`
		Benefits           []string `json:"benefits"`
	}

	JobUpdateRequest struct {
		JobRequest
		IsActive *bool `json:"is_active" validate:"required"`
	}
)

func NewJobHandler(jobService JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		validator:  newValidator(),
		timeout:    10 * time.Second,
	}
}

func (r JobRequest) toDomain() domain.Job {
	return domain.Job{
		Title:              r.Title,
		Role:               r.Role,
		LocationCity:       r.LocationCity,
		ShiftTiming:        r.ShiftTiming,
		ExperienceRequired: r.ExperienceRequired,
		WageMin:            r.WageMin,
		WageMax:            r.WageMax,
		Description:        r.Description,
		Requirements:       r.Requirements,
		Benefits:           r.Benefits,
	}
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	var req JobRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return badRequest(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate job", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	job, err := h.jobService.CreateJob(ctx, middleware.UserID(c), req.toDomain())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListJobs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	jobs, err := h.jobService.ListJobs(ctx, domain.JobFilter{
		Role:       c.QueryParam("role"),
		Location:   c.QueryParam("location"),
		Shift:      c.QueryParam("shift"),
		Experience: c.QueryParam("experience"),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}

	return c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	job, err := h.jobService.GetJob(ctx, c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListRestaurantJobs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	jobs, err := h.jobService.ListRestaurantJobs(ctx, middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}

	return c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) UpdateJob(c echo.Context) error {
	var req JobUpdateRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return badRequest(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate job update", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	in := req.toDomain()
	in.IsActive = *req.IsActive

	job, err := h.jobService.UpdateJob(ctx, c.Param("id"), middleware.UserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, job)
}
