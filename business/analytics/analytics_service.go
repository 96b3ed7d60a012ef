package analytics

import (
	"context"

	"shiftHire/business/review"
	"shiftHire/domain"
	"shiftHire/pkg/logger"
)

// AnalyticsRepository contract interface
type AnalyticsRepository interface {
	CountJobs(ctx context.Context, restaurantID string) (int64, error)
	ApplicationsByStatus(ctx context.Context, restaurantID string) (map[string]int64, error)
	ReviewSummary(ctx context.Context, restaurantID string) (float64, int64, error)
}

type analyticsService struct {
	analyticsRepo AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo AnalyticsRepository) *analyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
	}
}

// RestaurantAnalytics averages every review the restaurant has received.
func (s *analyticsService) RestaurantAnalytics(ctx context.Context, restaurantID string) (domain.RestaurantAnalytics, error) {
	totalJobs, err := s.analyticsRepo.CountJobs(ctx, restaurantID)
	if err != nil {
		logger.Error("Failed to count jobs", "error", err, "restaurant_id", restaurantID)
		return domain.RestaurantAnalytics{}, err
	}

	byStatus, err := s.analyticsRepo.ApplicationsByStatus(ctx, restaurantID)
	if err != nil {
		logger.Error("Failed to group applications", "error", err, "restaurant_id", restaurantID)
		return domain.RestaurantAnalytics{}, err
	}
	if byStatus == nil {
		byStatus = map[string]int64{}
	}

	var totalApplications int64
	for _, n := range byStatus {
		totalApplications += n
	}

	avg, totalReviews, err := s.analyticsRepo.ReviewSummary(ctx, restaurantID)
	if err != nil {
		logger.Error("Failed to summarize reviews", "error", err, "restaurant_id", restaurantID)
		return domain.RestaurantAnalytics{}, err
	}

	return domain.RestaurantAnalytics{
		TotalJobs:            totalJobs,
		TotalApplications:    totalApplications,
		ApplicationsByStatus: byStatus,
		AverageRating:        review.RoundOne(avg),
		TotalReviews:         totalReviews,
	}, nil
}
