package job

import (
	"context"
	"errors"
	"fmt"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
)

// JobRepository contract interface
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (domain.Job, error)
	ListActive(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
}

// RestaurantProfileFinder resolves the company name snapshotted onto a job.
type RestaurantProfileFinder interface {
	FindByUserID(ctx context.Context, userID string) (domain.RestaurantProfile, error)
}

type jobService struct {
	jobRepo     JobRepository
	profileRepo RestaurantProfileFinder
}

func NewJobService(jobRepo JobRepository, profileRepo RestaurantProfileFinder) *jobService {
	return &jobService{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
	}
}

func validate(j domain.Job) error {
	if j.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if j.Role == "" || j.LocationCity == "" {
		return fmt.Errorf("%w: role and location_city are required", domain.ErrInvalidInput)
	}
	if j.WageMin < 0 || j.WageMin > j.WageMax {
		return fmt.Errorf("%w: wage_min must not exceed wage_max", domain.ErrInvalidInput)
	}
	return nil
}

func (s *jobService) CreateJob(ctx context.Context, restaurantID string, in domain.Job) (domain.Job, error) {
	if err := validate(in); err != nil {
		return domain.Job{}, err
	}

	profile, err := s.profileRepo.FindByUserID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Job{}, fmt.Errorf("%w: create restaurant profile first", domain.ErrPreconditionFailed)
		}
		logger.Error("Failed to load restaurant profile", "error", err)
		return domain.Job{}, err
	}

	job := domain.Job{
		RestaurantID:       restaurantID,
		RestaurantName:     profile.CompanyName,
		Title:              in.Title,
		Role:               in.Role,
		LocationCity:       in.LocationCity,
		ShiftTiming:        in.ShiftTiming,
		ExperienceRequired: in.ExperienceRequired,
		WageMin:            in.WageMin,
		WageMax:            in.WageMax,
		Description:        in.Description,
		Requirements:       domain.StringList(in.Requirements),
		Benefits:           domain.StringList(in.Benefits),
		IsActive:           true,
	}

	if err := s.jobRepo.Create(ctx, &job); err != nil {
		logger.Error("Failed to create job", "error", err)
		return domain.Job{}, err
	}

	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	jobs, err := s.jobRepo.ListActive(ctx, filter)
	if err != nil {
		logger.Error("Failed to list jobs", "error", err)
		return nil, err
	}
	return jobs, nil
}

// GetJob returns inactive jobs too.
func (s *jobService) GetJob(ctx context.Context, id string) (domain.Job, error) {
	return s.jobRepo.FindByID(ctx, id)
}

func (s *jobService) ListRestaurantJobs(ctx context.Context, restaurantID string) ([]domain.Job, error) {
	jobs, err := s.jobRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		logger.Error("Failed to list restaurant jobs", "error", err)
		return nil, err
	}
	return jobs, nil
}

// UpdateJob replaces the editable fields including is_active. The
// restaurant_name snapshot and ownership are kept.
func (s *jobService) UpdateJob(ctx context.Context, id, restaurantID string, in domain.Job) (domain.Job, error) {
	if err := validate(in); err != nil {
		return domain.Job{}, err
	}

	existing, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	if existing.RestaurantID != restaurantID {
		return domain.Job{}, domain.ErrForbidden
	}

	existing.Title = in.Title
	existing.Role = in.Role
	existing.LocationCity = in.LocationCity
	existing.ShiftTiming = in.ShiftTiming
	existing.ExperienceRequired = in.ExperienceRequired
	existing.WageMin = in.WageMin
	existing.WageMax = in.WageMax
	existing.Description = in.Description
	existing.Requirements = domain.StringList(in.Requirements)
	existing.Benefits = domain.StringList(in.Benefits)
	existing.IsActive = in.IsActive

	if err := s.jobRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update job", "error", err)
		return domain.Job{}, err
	}

	return existing, nil
}
