package postgres

import (
	"context"

	"shiftHire/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err, "phone number")
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return domain.User{}, translateError(err, "user")
	}

	return user, nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if err != nil {
		return domain.User{}, translateError(err, "user")
	}

	return user, nil
}
