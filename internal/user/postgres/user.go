package postgres

import (
	"context"

	"gorm.io/gorm"

	datamodel "github.com/gastora/expense-api/internal/core/datamodel/user"
	"github.com/gastora/expense-api/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*datamodel.User, error) {
	var row datamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
