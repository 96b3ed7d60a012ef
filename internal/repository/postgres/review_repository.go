package postgres

import (
	"context"

	"shiftHire/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	reviews := []domain.Review{}

	err := r.DB.WithContext(ctx).Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").Limit(defaultLimit).Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}
