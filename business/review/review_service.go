package review

import (
	"context"
	"errors"
	"fmt"
	"math"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
)

// ReviewRepository contract interface
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Review, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

type reviewService struct {
	reviewRepo ReviewRepository
	userRepo   UserRepository
}

func NewReviewService(reviewRepo ReviewRepository, userRepo UserRepository) *reviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

func validRating(r float64) bool {
	return r >= 1 && r <= 5
}

func (s *reviewService) CreateReview(ctx context.Context, workerID string, in domain.Review) (domain.Review, error) {
	ratings := []struct {
		name  string
		value float64
	}{
		{"overall_rating", in.OverallRating},
		{"wage_accuracy", in.WageAccuracy},
		{"work_environment", in.WorkEnvironment},
		{"career_growth", in.CareerGrowth},
		{"compliance", in.Compliance},
	}
	for _, r := range ratings {
		if !validRating(r.value) {
			return domain.Review{}, fmt.Errorf("%w: %s must be between 1 and 5", domain.ErrInvalidInput, r.name)
		}
	}

	restaurant, err := s.userRepo.FindByID(ctx, in.RestaurantID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to load reviewed restaurant", "error", err)
		return domain.Review{}, err
	}
	if err != nil || restaurant.Role != domain.RoleRestaurant {
		return domain.Review{}, fmt.Errorf("%w: restaurant does not exist", domain.ErrPreconditionFailed)
	}

	worker, err := s.userRepo.FindByID(ctx, workerID)
	if err != nil {
		logger.Error("Failed to load reviewing worker", "error", err, "worker_id", workerID)
		return domain.Review{}, err
	}

	review := domain.Review{
		RestaurantID:    in.RestaurantID,
		WorkerID:        workerID,
		WorkerName:      worker.Name,
		OverallRating:   in.OverallRating,
		WageAccuracy:    in.WageAccuracy,
		WorkEnvironment: in.WorkEnvironment,
		CareerGrowth:    in.CareerGrowth,
		Compliance:      in.Compliance,
		Comment:         in.Comment,
	}

	if err := s.reviewRepo.Create(ctx, &review); err != nil {
		logger.Error("Failed to create review", "error", err)
		return domain.Review{}, err
	}

	return review, nil
}

// RestaurantReviews averages over the latest reviews returned by the store.
func (s *reviewService) RestaurantReviews(ctx context.Context, restaurantID string) (domain.RestaurantReviews, error) {
	reviews, err := s.reviewRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		logger.Error("Failed to list reviews", "error", err)
		return domain.RestaurantReviews{}, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return domain.RestaurantReviews{
		Reviews:      reviews,
		Averages:     averages(reviews),
		TotalReviews: len(reviews),
	}, nil
}

func averages(reviews []domain.Review) domain.ReviewAverages {
	if len(reviews) == 0 {
		return domain.ReviewAverages{}
	}

	var sum domain.ReviewAverages
	for _, r := range reviews {
		sum.Overall += r.OverallRating
		sum.WageAccuracy += r.WageAccuracy
		sum.WorkEnvironment += r.WorkEnvironment
		sum.CareerGrowth += r.CareerGrowth
		sum.Compliance += r.Compliance
	}

	n := float64(len(reviews))
	return domain.ReviewAverages{
		Overall:         RoundOne(sum.Overall / n),
		WageAccuracy:    RoundOne(sum.WageAccuracy / n),
		WorkEnvironment: RoundOne(sum.WorkEnvironment / n),
		CareerGrowth:    RoundOne(sum.CareerGrowth / n),
		Compliance:      RoundOne(sum.Compliance / n),
	}
}

// RoundOne rounds half away from zero to one decimal place.
func RoundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
