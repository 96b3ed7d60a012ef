package restaurant

import (
	"context"
	"errors"
	"fmt"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
)

// RestaurantProfileRepository contract interface
type RestaurantProfileRepository interface {
	Create(ctx context.Context, profile *domain.RestaurantProfile) error
	FindByUserID(ctx context.Context, userID string) (domain.RestaurantProfile, error)
	Update(ctx context.Context, profile *domain.RestaurantProfile) error
}

type restaurantService struct {
	profileRepo RestaurantProfileRepository
}

func NewRestaurantService(profileRepo RestaurantProfileRepository) *restaurantService {
	return &restaurantService{
		profileRepo: profileRepo,
	}
}

func validate(p domain.RestaurantProfile) error {
	if p.CompanyName == "" {
		return fmt.Errorf("%w: company_name is required", domain.ErrInvalidInput)
	}
	if p.NumberOfOutlets < 0 {
		return fmt.Errorf("%w: number_of_outlets must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// normalize drops is_verified; clients cannot set it.
func normalize(userID string, in domain.RestaurantProfile) domain.RestaurantProfile {
	return domain.RestaurantProfile{
		UserID:          userID,
		CompanyName:     in.CompanyName,
		NumberOfOutlets: in.NumberOfOutlets,
		ManagerName:     in.ManagerName,
		LocationCities:  domain.StringList(in.LocationCities),
		Description:     in.Description,
	}
}

func (s *restaurantService) CreateProfile(ctx context.Context, userID string, in domain.RestaurantProfile) (domain.RestaurantProfile, error) {
	if err := validate(in); err != nil {
		return domain.RestaurantProfile{}, err
	}

	_, err := s.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return domain.RestaurantProfile{}, fmt.Errorf("profile %w", domain.ErrDuplicateResource)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to look up restaurant profile", "error", err)
		return domain.RestaurantProfile{}, err
	}

	profile := normalize(userID, in)
	if err := s.profileRepo.Create(ctx, &profile); err != nil {
		logger.Error("Failed to create restaurant profile", "error", err)
		return domain.RestaurantProfile{}, err
	}

	return profile, nil
}

func (s *restaurantService) GetProfile(ctx context.Context, userID string) (domain.RestaurantProfile, error) {
	return s.profileRepo.FindByUserID(ctx, userID)
}

func (s *restaurantService) UpdateProfile(ctx context.Context, userID string, in domain.RestaurantProfile) (domain.RestaurantProfile, error) {
	if err := validate(in); err != nil {
		return domain.RestaurantProfile{}, err
	}

	profile := normalize(userID, in)
	if err := s.profileRepo.Update(ctx, &profile); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to update restaurant profile", "error", err)
		}
		return domain.RestaurantProfile{}, err
	}

	return s.profileRepo.FindByUserID(ctx, userID)
}
