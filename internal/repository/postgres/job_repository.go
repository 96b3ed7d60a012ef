package postgres

import (
	"context"

	"shiftHire/domain"

	"gorm.io/gorm"
)

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{
		DB: db,
	}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.DB.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (domain.Job, error) {
	var job domain.Job

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return domain.Job{}, translateError(err, "job")
	}

	return job, nil
}

// FindByIDs returns the jobs that exist, keyed by id.
func (r *JobRepository) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Job, error) {
	out := make(map[string]domain.Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var jobs []domain.Job
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}

	for _, j := range jobs {
		out[j.ID] = j
	}

	return out, nil
}

// ListActive returns active jobs matching the filter, newest first.
func (r *JobRepository) ListActive(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	q := r.DB.WithContext(ctx).Where("is_active = ?", true)
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Location != "" {
		q = q.Where("location_city = ?", filter.Location)
	}
	if filter.Shift != "" {
		q = q.Where("shift_timing = ?", filter.Shift)
	}
	if filter.Experience != "" {
		q = q.Where("experience_required = ?", filter.Experience)
	}

	jobs := []domain.Job{}
	if err := q.Order("created_at desc").Limit(defaultLimit).Find(&jobs).Error; err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *JobRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Job, error) {
	jobs := []domain.Job{}

	err := r.DB.WithContext(ctx).Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").Limit(defaultLimit).Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// Update replaces the editable fields; owner, snapshot and created_at stay.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	res := r.DB.WithContext(ctx).Model(&domain.Job{}).Where("id = ?", job.ID).
		Select("title", "role", "location_city", "shift_timing", "experience_required",
			"wage_min", "wage_max", "description", "requirements", "benefits", "is_active").
		Updates(job)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "job")
	}

	return nil
}
