package rest

import (
	"context"
	"net/http"
	"time"

	"shiftHire/domain"
	"shiftHire/internal/middleware"

	"github.com/labstack/echo/v4"
)

type (
	AnalyticsService interface {
		RestaurantAnalytics(ctx context.Context, restaurantID string) (domain.RestaurantAnalytics, error)
	}

	RecommendationService interface {
		Recommend(ctx context.Context, workerID string) (domain.JobRecommendations, error)
	}

	// InsightsHandler serves the read-only computed views.
	InsightsHandler struct {
		analyticsService      AnalyticsService
		recommendationService RecommendationService
		timeout               time.Duration
	}
)

func NewInsightsHandler(analyticsService AnalyticsService, recommendationService RecommendationService) *InsightsHandler {
	return &InsightsHandler{
		analyticsService:      analyticsService,
		recommendationService: recommendationService,
		timeout:               10 * time.Second,
	}
}

func (h *InsightsHandler) RestaurantAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	analytics, err := h.analyticsService.RestaurantAnalytics(ctx, middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, analytics)
}

func (h *InsightsHandler) JobRecommendations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recommendations, err := h.recommendationService.Recommend(ctx, middleware.UserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	if recommendations.Jobs == nil {
		recommendations.Jobs = []domain.Job{}
	}

	return c.JSON(http.StatusOK, recommendations)
}
