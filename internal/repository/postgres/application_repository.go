package postgres

import (
	"context"
	"errors"
	"time"

	"shiftHire/domain"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{
		DB: db,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, application *domain.Application) error {
	if err := r.DB.WithContext(ctx).Create(application).Error; err != nil {
		return translateError(err, "application")
	}

	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (domain.Application, error) {
	var application domain.Application

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&application).Error
	if err != nil {
		return domain.Application{}, translateError(err, "application")
	}

	return application, nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, jobID, workerID string) (bool, error) {
	var application domain.Application

	err := r.DB.WithContext(ctx).Select("id").
		Where("job_id = ? AND worker_id = ?", jobID, workerID).
		Take(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *ApplicationRepository) ListByWorker(ctx context.Context, workerID string) ([]domain.Application, error) {
	applications := []domain.Application{}

	err := r.DB.WithContext(ctx).Where("worker_id = ?", workerID).
		Order("applied_at desc").Limit(defaultLimit).Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	applications := []domain.Application{}

	err := r.DB.WithContext(ctx).Where("job_id = ?", jobID).
		Order("applied_at desc").Limit(defaultLimit).Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	res := r.DB.WithContext(ctx).Model(&domain.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "application")
	}

	return nil
}
