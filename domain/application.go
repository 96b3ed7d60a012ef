package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationApplied     = "applied"
	ApplicationShortlisted = "shortlisted"
	ApplicationInterview   = "interview"
	ApplicationOffered     = "offered"
	ApplicationAccepted    = "accepted"
	ApplicationRejected    = "rejected"
)

var applicationStatuses = map[string]bool{
	ApplicationApplied:     true,
	ApplicationShortlisted: true,
	ApplicationInterview:   true,
	ApplicationOffered:     true,
	ApplicationAccepted:    true,
	ApplicationRejected:    true,
}

func ValidApplicationStatus(status string) bool {
	return applicationStatuses[status]
}

type Application struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	JobID      string    `json:"job_id" gorm:"column:job_id;type:varchar(36);uniqueIndex:idx_application_job_worker;not null"`
	WorkerID   string    `json:"worker_id" gorm:"column:worker_id;type:varchar(36);uniqueIndex:idx_application_job_worker;index;not null"`
	WorkerName string    `json:"worker_name" gorm:"column:worker_name"`
	Status     string    `json:"status" gorm:"column:status;not null"`
	AppliedAt  time.Time `json:"applied_at" gorm:"column:applied_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// WorkerApplication is an application as the applying worker sees it.
type WorkerApplication struct {
	Application
	JobDetails *Job `json:"job_details,omitempty"`
}

// JobApplication is an application as the hiring restaurant sees it.
type JobApplication struct {
	Application
	WorkerProfile *WorkerProfile `json:"worker_profile,omitempty"`
}
