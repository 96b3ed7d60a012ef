package domain

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RestaurantID    string    `json:"restaurant_id" gorm:"column:restaurant_id;type:varchar(36);index;not null"`
	WorkerID        string    `json:"worker_id" gorm:"column:worker_id;type:varchar(36);not null"`
	WorkerName      string    `json:"worker_name" gorm:"column:worker_name"`
	OverallRating   float64   `json:"overall_rating" gorm:"column:overall_rating"`
	WageAccuracy    float64   `json:"wage_accuracy" gorm:"column:wage_accuracy"`
	WorkEnvironment float64   `json:"work_environment" gorm:"column:work_environment"`
	CareerGrowth    float64   `json:"career_growth" gorm:"column:career_growth"`
	Compliance      float64   `json:"compliance" gorm:"column:compliance"`
	Comment         string    `json:"comment" gorm:"column:comment"`
	IsVerified      bool      `json:"is_verified" gorm:"column:is_verified;default:false"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

type ReviewAverages struct {
	Overall         float64 `json:"overall"`
	WageAccuracy    float64 `json:"wage_accuracy"`
	WorkEnvironment float64 `json:"work_environment"`
	CareerGrowth    float64 `json:"career_growth"`
	Compliance      float64 `json:"compliance"`
}

type RestaurantReviews struct {
	Reviews      []Review       `json:"reviews"`
	Averages     ReviewAverages `json:"averages"`
	TotalReviews int            `json:"total_reviews"`
}

type RestaurantAnalytics struct {
	TotalJobs            int64            `json:"total_jobs"`
	TotalApplications    int64            `json:"total_applications"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	AverageRating        float64          `json:"average_rating"`
	TotalReviews         int64            `json:"total_reviews"`
}

type JobRecommendations struct {
	Jobs             []Job  `json:"jobs"`
	Source           string `json:"source"`
	AIRecommendation string `json:"ai_recommendation,omitempty"`
}
