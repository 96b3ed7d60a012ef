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
	WorkerService interface {
		CreateProfile(ctx context.Context, userID string, in domain.WorkerProfile) (domain.WorkerProfile, error)
		GetProfile(ctx context.Context, userID string) (domain.WorkerProfile, error)
		UpdateProfile(ctx context.Context, userID string, in domain.WorkerProfile) (domain.WorkerProfile, error)
	}

	RestaurantService interface {
		CreateProfile(ctx context.Context, userID string, in domain.RestaurantProfile) (domain.RestaurantProfile, error)
		GetProfile(ctx context.Context, userID string) (domain.RestaurantProfile, error)
		UpdateProfile(ctx context.Context, userID string, in domain.RestaurantProfile) (domain.RestaurantProfile, error)
	}

	ProfileHandler struct {
		workerService     WorkerService
		restaurantService RestaurantService
		validator         *validator.Validate
		timeout           time.Duration
	}

	WorkerProfileRequest struct {
		LocationCity    string   `json:"location_city" validate:"required"`
		ExperienceYears int      `json:"experience_years" validate:"gte=0"`
		PreferredRoles  []string `json:"preferred_roles"`
		PreferredShifts []string `json:"preferred_shifts"`
		Languages       []string `json:"languages"`
		Availability    string   `json:"availability" validate:"required,oneof=immediate within_week within_month"`
		Skills          []string `json:"skills"`
	}

	RestaurantProfileRequest struct {
		CompanyName     string   `json:"company_name" validate:"required"`
		NumberOfOutlets int      `json:"number_of_outlets" validate:"gte=0"`
		ManagerName     string   `json:"manager_name"`
		LocationCities  []string `json:"location_cities"`
		Description     string   `json:"description"`
	}
)

func NewProfileHandler(workerService WorkerService, restaurantService RestaurantService) *ProfileHandler {
	return &ProfileHandler{
		workerService:     workerService,
		restaurantService: restaurantService,
		validator:         newValidator(),
		timeout:           10 * time.Second,
	}
}

func (r WorkerProfileRequest) toDomain() domain.WorkerProfile {
	return domain.WorkerProfile{
		LocationCity:    r.LocationCity,
		ExperienceYears: r.ExperienceYears,
		PreferredRoles:  r.PreferredRoles,
		PreferredShifts: r.PreferredShifts,
		Languages:       r.Languages,
		Availability:    r.Availability,
		Skills:          r.Skills,
	}
}

func (r RestaurantProfileRequest) toDomain() domain.RestaurantProfile {
	return domain.RestaurantProfile{
		CompanyName:     r.CompanyName,
		NumberOfOutlets: r.NumberOfOutlets,
		ManagerName:     r.ManagerName,
		LocationCities:  r.LocationCities,
		Description:     r.Description,
	}
}

func (h *ProfileHandler) bindWorker(c echo.Context) (domain.WorkerProfile, error) {
	var req WorkerProfileRequest
	if err := c.Bind(&req); err != nil {
		return domain.WorkerProfile{}, err
	}
	if err := h.validator.Struct(&req); err != nil {
		return domain.WorkerProfile{}, err
	}
	return req.toDomain(), nil
}

func (h *ProfileHandler) bindRestaurant(c echo.Context) (domain.RestaurantProfile, error) {
	var req RestaurantProfileRequest
	if err := c.Bind(&req); err != nil {
		return domain.RestaurantProfile{}, err
	}
	if err := h.validator.Struct(&req); err != nil {
		return domain.RestaurantProfile{}, err
	}
	return req.toDomain(), nil
}

func (h *ProfileHandler) CreateWorkerProfile(c echo.Context) error {
	in, err := h.bindWorker(c)
	if err != nil {
		logger.Error("Failed to validate worker profile", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.workerService.CreateProfile(ctx, middleware.UserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) GetWorkerProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.workerService.GetProfile(ctx, middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateWorkerProfile(c echo.Context) error {
	in, err := h.bindWorker(c)
	if err != nil {
		logger.Error("Failed to validate worker profile", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if _, err := h.workerService.UpdateProfile(ctx, middleware.UserID(c), in); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Profile updated successfully"})
}

func (h *ProfileHandler) CreateRestaurantProfile(c echo.Context) error {
	in, err := h.bindRestaurant(c)
	if err != nil {
		logger.Error("Failed to validate restaurant profile", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.restaurantService.CreateProfile(ctx, middleware.UserID(c), in)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) GetRestaurantProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.restaurantService.GetProfile(ctx, middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateRestaurantProfile(c echo.Context) error {
	in, err := h.bindRestaurant(c)
	if err != nil {
		logger.Error("Failed to validate restaurant profile", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if _, err := h.restaurantService.UpdateProfile(ctx, middleware.UserID(c), in); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Profile updated successfully"})
}
