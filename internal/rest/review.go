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
	ReviewService interface {
		CreateReview(ctx context.Context, workerID string, in domain.Review) (domain.Review, error)
		RestaurantReviews(ctx context.Context, restaurantID string) (domain.RestaurantReviews, error)
	}

	ReviewHandler struct {
		reviewService ReviewService
		validator     *validator.Validate
		timeout       time.Duration
	}

	ReviewRequest struct {
		RestaurantID    string  `json:"restaurant_id" validate:"required"`
		OverallRating   float64 `json:"overall_rating" validate:"gte=1,lte=5"`
		WageAccuracy    float64 `json:"wage_accuracy" validate:"gte=1,lte=5"`
		WorkEnvironment float64 `json:"work_environment" validate:"gte=1,lte=5"`
		CareerGrowth    float64 `json:"career_growth" validate:"gte=1,lte=5"`
		Compliance      float64 `json:"compliance" validate:"gte=1,lte=5"`
		Comment         string  `json:"comment"`
	}
)

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     newValidator(),
		timeout:       10 * time.Second,
	}
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req ReviewRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return badRequest(c, err)
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate review", "error", err)
		return badRequest(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	review, err := h.reviewService.CreateReview(ctx, middleware.UserID(c), domain.Review{
		RestaurantID:    req.RestaurantID,
		OverallRating:   req.OverallRating,
		WageAccuracy:    req.WageAccuracy,
		WorkEnvironment: req.WorkEnvironment,
		CareerGrowth:    req.CareerGrowth,
		Compliance:      req.Compliance,
		Comment:         req.Comment,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) RestaurantReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.RestaurantReviews(ctx, c.Param("restaurant_id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, reviews)
}
