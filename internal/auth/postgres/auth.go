package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gastora/expense-api/internal/auth"
	userDatamodel "github.com/gastora/expense-api/internal/core/datamodel/user"
)

// AuthRepository implements auth.RepositoryAPI using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetUserByEmail(email string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *AuthRepository) GetUserByID(id string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AuthRepository) CreateCompany(company *userDatamodel.Company) error {
	return r.db.Create(company).Error
}

func (r *AuthRepository) CreateUser(user *userDatamodel.User) error {
	return r.db.Create(user).Error
}

func (r *AuthRepository) UpdateLastLogin(userID string, at time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login": at,
			"updated_at": time.Now(),
		}).Error
}
