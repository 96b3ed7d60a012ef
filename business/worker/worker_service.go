package worker

import (
	"context"
	"errors"
	"fmt"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
)

// WorkerProfileRepository contract interface
type WorkerProfileRepository interface {
	Create(ctx context.Context, profile *domain.WorkerProfile) error
	FindByUserID(ctx context.Context, userID string) (domain.WorkerProfile, error)
	Update(ctx context.Context, profile *domain.WorkerProfile) error
}

type workerService struct {
	profileRepo WorkerProfileRepository
}

func NewWorkerService(profileRepo WorkerProfileRepository) *workerService {
	return &workerService{
		profileRepo: profileRepo,
	}
}

var validAvailability = map[string]bool{
	domain.AvailabilityImmediate:   true,
	domain.AvailabilityWithinWeek:  true,
	domain.AvailabilityWithinMonth: true,
}

func validate(p domain.WorkerProfile) error {
	if p.LocationCity == "" {
		return fmt.Errorf("%w: location_city is required", domain.ErrInvalidInput)
	}
	if p.ExperienceYears < 0 {
		return fmt.Errorf("%w: experience_years must not be negative", domain.ErrInvalidInput)
	}
	if !validAvailability[p.Availability] {
		return fmt.Errorf("%w: availability must be immediate, within_week or within_month", domain.ErrInvalidInput)
	}
	return nil
}

func normalize(userID string, in domain.WorkerProfile) domain.WorkerProfile {
	return domain.WorkerProfile{
		UserID:          userID,
		LocationCity:    in.LocationCity,
		ExperienceYears: in.ExperienceYears,
		PreferredRoles:  domain.StringList(in.PreferredRoles),
		PreferredShifts: domain.StringList(in.PreferredShifts),
		Languages:       domain.StringList(in.Languages),
		Availability:    in.Availability,
		Skills:          domain.StringList(in.Skills),
	}
}

func (s *workerService) CreateProfile(ctx context.Context, userID string, in domain.WorkerProfile) (domain.WorkerProfile, error) {
	if err := validate(in); err != nil {
		return domain.WorkerProfile{}, err
	}

	_, err := s.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return domain.WorkerProfile{}, fmt.Errorf("profile %w", domain.ErrDuplicateResource)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to look up worker profile", "error", err)
		return domain.WorkerProfile{}, err
	}

	profile := normalize(userID, in)
	if err := s.profileRepo.Create(ctx, &profile); err != nil {
		logger.Error("Failed to create worker profile", "error", err)
		return domain.WorkerProfile{}, err
	}

	return profile, nil
}

func (s *workerService) GetProfile(ctx context.Context, userID string) (domain.WorkerProfile, error) {
	return s.profileRepo.FindByUserID(ctx, userID)
}

// UpdateProfile replaces every field; omitted lists become empty.
func (s *workerService) UpdateProfile(ctx context.Context, userID string, in domain.WorkerProfile) (domain.WorkerProfile, error) {
	if err := validate(in); err != nil {
		return domain.WorkerProfile{}, err
	}

	profile := normalize(userID, in)
	if err := s.profileRepo.Update(ctx, &profile); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Failed to update worker profile", "error", err)
		}
		return domain.WorkerProfile{}, err
	}

	return s.profileRepo.FindByUserID(ctx, userID)
}
