package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Job struct {
	ID                 string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RestaurantID       string                      `json:"restaurant_id" gorm:"column:restaurant_id;type:varchar(36);index;not null"`
	RestaurantName     string                      `json:"restaurant_name" gorm:"column:restaurant_name"`
	Title              string                      `json:"title" gorm:"column:title;not null"`
	Role               string                      `json:"role" gorm:"column:role;index"`
	LocationCity       string                      `json:"location_city" gorm:"column:location_city;index"`
	ShiftTiming        string                      `json:"shift_timing" gorm:"column:shift_timing"`
	ExperienceRequired string                      `json:"experience_required" gorm:"column:experience_required"`
	WageMin            float64                     `json:"wage_min" gorm:"column:wage_min"`
	WageMax            float64                     `json:"wage_max" gorm:"column:wage_max"`
	Description        string                      `json:"description" gorm:"column:description"`
	Requirements       datatypes.JSONSlice[string] `json:"requirements" gorm:"column:requirements"`
	Benefits           datatypes.JSONSlice[string] `json:"benefits" gorm:"column:benefits"`
	IsActive           bool                        `json:"is_active" gorm:"column:is_active;index"`
	CreatedAt          time.Time                   `json:"created_at" gorm:"index"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	assignID(&j.ID)
	return nil
}

// JobFilter narrows the public listing. Empty fields do not filter.
type JobFilter struct {
	Role       string
	Location   string
	Shift      string
	Experience string
}
