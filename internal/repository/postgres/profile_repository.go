package postgres

import (
	"context"

	"shiftHire/domain"

	"gorm.io/gorm"
)

type WorkerProfileRepository struct {
	DB *gorm.DB
}

func NewWorkerProfileRepository(db *gorm.DB) *WorkerProfileRepository {
	return &WorkerProfileRepository{
		DB: db,
	}
}

func (r *WorkerProfileRepository) Create(ctx context.Context, profile *domain.WorkerProfile) error {
	if err := r.DB.WithContext(ctx).Create(profile).Error; err != nil {
		return translateError(err, "profile")
	}

	return nil
}

func (r *WorkerProfileRepository) FindByUserID(ctx context.Context, userID string) (domain.WorkerProfile, error) {
	var profile domain.WorkerProfile

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return domain.WorkerProfile{}, translateError(err, "profile")
	}

	return profile, nil
}

// FindByUserIDs returns the profiles that exist, keyed by user id.
func (r *WorkerProfileRepository) FindByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.WorkerProfile, error) {
	out := make(map[string]domain.WorkerProfile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var profiles []domain.WorkerProfile
	if err := r.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}

	for _, p := range profiles {
		out[p.UserID] = p
	}

	return out, nil
}

// Update replaces every client-writable field of the user's profile.
func (r *WorkerProfileRepository) Update(ctx context.Context, profile *domain.WorkerProfile) error {
	res := r.DB.WithContext(ctx).Model(&domain.WorkerProfile{}).Where("user_id = ?", profile.UserID).
		Select("location_city", "experience_years", "preferred_roles", "preferred_shifts", "languages", "availability", "skills").
		Updates(profile)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "profile")
	}

	return nil
}

type RestaurantProfileRepository struct {
	DB *gorm.DB
}

func NewRestaurantProfileRepository(db *gorm.DB) *RestaurantProfileRepository {
	return &RestaurantProfileRepository{
		DB: db,
	}
}

func (r *RestaurantProfileRepository) Create(ctx context.Context, profile *domain.RestaurantProfile) error {
	if err := r.DB.WithContext(ctx).Create(profile).Error; err != nil {
		return translateError(err, "profile")
	}

	return nil
}

func (r *RestaurantProfileRepository) FindByUserID(ctx context.Context, userID string) (domain.RestaurantProfile, error) {
	var profile domain.RestaurantProfile

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return domain.RestaurantProfile{}, translateError(err, "profile")
	}

	return profile, nil
}

// Update never touches is_verified.
func (r *RestaurantProfileRepository) Update(ctx context.Context, profile *domain.RestaurantProfile) error {
	res := r.DB.WithContext(ctx).Model(&domain.RestaurantProfile{}).Where("user_id = ?", profile.UserID).
		Select("company_name", "number_of_outlets", "manager_name", "location_cities", "description").
		Updates(profile)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "profile")
	}

	return nil
}
