package postgres

import (
	"context"

	"shiftHire/domain"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{
		DB: db,
	}
}

func (r *AnalyticsRepository) CountJobs(ctx context.Context, restaurantID string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&domain.Job{}).Where("restaurant_id = ?", restaurantID).Count(&total).Error
	return total, err
}

// ApplicationsByStatus counts applications to the restaurant's jobs per status.
func (r *AnalyticsRepository) ApplicationsByStatus(ctx context.Context, restaurantID string) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	ownJobs := r.DB.Model(&domain.Job{}).Select("id").Where("restaurant_id = ?", restaurantID)

	var rows []statusCount
	err := r.DB.WithContext(ctx).Model(&domain.Application{}).
		Select("status, COUNT(*) AS count").
		Where("job_id IN (?)", ownJobs).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}

	return out, nil
}

// ReviewSummary returns the unrounded mean overall rating and the review count.
func (r *AnalyticsRepository) ReviewSummary(ctx context.Context, restaurantID string) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}

	err := r.DB.WithContext(ctx).Model(&domain.Review{}).
		Select("COALESCE(AVG(overall_rating), 0) AS average, COUNT(*) AS total").
		Where("restaurant_id = ?", restaurantID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}

	return row.Average, row.Total, nil
}
