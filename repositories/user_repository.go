package repositories

import (
	"context"

	"gorm.io/gorm"

	"lawfirm-cms/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, id uint, role models.UserRole) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return wrapErr(r.db.WithContext(ctx).Create(user).Error, "user")
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrapErr(err, "user")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapErr(err, "user")
	}
	return &user, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, role models.UserRole) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return wrapErr(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user not found", nil)
	}
	return nil
}
