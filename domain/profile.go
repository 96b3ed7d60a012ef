package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AvailabilityImmediate   = "immediate"
	AvailabilityWithinWeek  = "within_week"
	AvailabilityWithinMonth = "within_month"
)

type WorkerProfile struct {
	ID              string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string                      `json:"user_id" gorm:"column:user_id;type:varchar(36);uniqueIndex;not null"`
	LocationCity    string                      `json:"location_city" gorm:"column:location_city;index"`
	ExperienceYears int                         `json:"experience_years" gorm:"column:experience_years"`
	PreferredRoles  datatypes.JSONSlice[string] `json:"preferred_roles" gorm:"column:preferred_roles"`
	PreferredShifts datatypes.JSONSlice[string] `json:"preferred_shifts" gorm:"column:preferred_shifts"`
	Languages       datatypes.JSONSlice[string] `json:"languages" gorm:"column:languages"`
	Availability    string                      `json:"availability" gorm:"column:availability"`
	Skills          datatypes.JSONSlice[string] `json:"skills" gorm:"column:skills"`
	CreatedAt       time.Time                   `json:"created_at"`
}

func (WorkerProfile) TableName() string {
	return "worker_profiles"
}

func (p *WorkerProfile) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

type RestaurantProfile struct {
	ID              string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string                      `json:"user_id" gorm:"column:user_id;type:varchar(36);uniqueIndex;not null"`
	CompanyName     string                      `json:"company_name" gorm:"column:company_name;not null"`
	NumberOfOutlets int                         `json:"number_of_outlets" gorm:"column:number_of_outlets"`
	ManagerName     string                      `json:"manager_name" gorm:"column:manager_name"`
	LocationCities  datatypes.JSONSlice[string] `json:"location_cities" gorm:"column:location_cities"`
	Description     string                      `json:"description" gorm:"column:description"`
	IsVerified      bool                        `json:"is_verified" gorm:"column:is_verified;default:false"`
	CreatedAt       time.Time                   `json:"created_at"`
}

func (RestaurantProfile) TableName() string {
	return "restaurant_profiles"
}

func (p *RestaurantProfile) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// StringList never returns nil so empty lists serialize as [].
func StringList(in []string) datatypes.JSONSlice[string] {
	if in == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](in)
}
