package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleWorker     = "worker"
	RoleRestaurant = "restaurant"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Phone        string    `json:"phone" gorm:"column:phone;uniqueIndex;not null"`
	Email        *string   `json:"email,omitempty" gorm:"column:email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"column:role;not null"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// Identity is what a verified bearer token resolves to.
type Identity struct {
	UserID string
	Role   string
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
