package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiftHire/domain"
	"shiftHire/pkg/logger"
)

// ApplicationRepository contract interface
type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application) error
	FindByID(ctx context.Context, id string) (domain.Application, error)
	Exists(ctx context.Context, jobID, workerID string) (bool, error)
	ListByWorker(ctx context.Context, workerID string) ([]domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}

type JobRepository interface {
	FindByID(ctx context.Context, id string) (domain.Job, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Job, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

type WorkerProfileRepository interface {
	FindByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.WorkerProfile, error)
}

type applicationService struct {
	applicationRepo ApplicationRepository
	jobRepo         JobRepository
	userRepo        UserRepository
	profileRepo     WorkerProfileRepository
	now             func() time.Time
}

func NewApplicationService(applicationRepo ApplicationRepository, jobRepo JobRepository, userRepo UserRepository, profileRepo WorkerProfileRepository) *applicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		now:             time.Now,
	}
}

func (s *applicationService) Apply(ctx context.Context, jobID, workerID string) (domain.Application, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return domain.Application{}, err
	}
	if !job.IsActive {
		return domain.Application{}, fmt.Errorf("%w: job is no longer active", domain.ErrPreconditionFailed)
	}

	exists, err := s.applicationRepo.Exists(ctx, jobID, workerID)
	if err != nil {
		logger.Error("Failed to check existing application", "error", err)
		return domain.Application{}, err
	}
	if exists {
		return domain.Application{}, fmt.Errorf("application %w", domain.ErrDuplicateResource)
	}

	worker, err := s.userRepo.FindByID(ctx, workerID)
	if err != nil {
		logger.Error("Failed to load applying worker", "error", err, "worker_id", workerID)
		return domain.Application{}, err
	}

	now := s.now().UTC()
	application := domain.Application{
		JobID:      jobID,
		WorkerID:   workerID,
		WorkerName: worker.Name,
		Status:     domain.ApplicationApplied,
		AppliedAt:  now,
		UpdatedAt:  now,
	}

	// The unique (job_id, worker_id) index settles concurrent applies.
	if err := s.applicationRepo.Create(ctx, &application); err != nil {
		if !errors.Is(err, domain.ErrDuplicateResource) {
			logger.Error("Failed to create application", "error", err)
		}
		return domain.Application{}, err
	}

	return application, nil
}

func (s *applicationService) ListWorkerApplications(ctx context.Context, workerID string) ([]domain.WorkerApplication, error) {
	applications, err := s.applicationRepo.ListByWorker(ctx, workerID)
	if err != nil {
		logger.Error("Failed to list worker applications", "error", err)
		return nil, err
	}

	ids := make([]string, 0, len(applications))
	for _, a := range applications {
		ids = append(ids, a.JobID)
	}

	jobs, err := s.jobRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to load jobs for applications", "error", err)
		return nil, err
	}

	out := make([]domain.WorkerApplication, 0, len(applications))
	for _, a := range applications {
		item := domain.WorkerApplication{Application: a}
		if job, ok := jobs[a.JobID]; ok {
			item.JobDetails = &job
		}
		out = append(out, item)
	}

	return out, nil
}

// ListJobApplications reports a job owned by someone else as not found.
func (s *applicationService) ListJobApplications(ctx context.Context, jobID, restaurantID string) ([]domain.JobApplication, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.RestaurantID != restaurantID {
		return nil, fmt.Errorf("job %w", domain.ErrNotFound)
	}

	applications, err := s.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		logger.Error("Failed to list job applications", "error", err)
		return nil, err
	}

	ids := make([]string, 0, len(applications))
	for _, a := range applications {
		ids = append(ids, a.WorkerID)
	}

	profiles, err := s.profileRepo.FindByUserIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to load worker profiles for applications", "error", err)
		return nil, err
	}

	out := make([]domain.JobApplication, 0, len(applications))
	for _, a := range applications {
		item := domain.JobApplication{Application: a}
		if profile, ok := profiles[a.WorkerID]; ok {
			item.WorkerProfile = &profile
		}
		out = append(out, item)
	}

	return out, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, applicationID, restaurantID, status string) error {
	if !domain.ValidApplicationStatus(status) {
		return fmt.Errorf("%w: unknown application status %q", domain.ErrInvalidInput, status)
	}

	application, err := s.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}

	job, err := s.jobRepo.FindByID(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if job.RestaurantID != restaurantID {
		return domain.ErrForbidden
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, status, s.now().UTC()); err != nil {
		logger.Error("Failed to update application status", "error", err)
		return err
	}

	return nil
}
