package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/gastora/expense-api/internal/category"
	datamodel "github.com/gastora/expense-api/internal/core/datamodel/category"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetActiveByCompany(ctx context.Context, companyID string) ([]*datamodel.ExpenseCategory, error) {
	var rows []*datamodel.ExpenseCategory
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id, companyID string) (*datamodel.ExpenseCategory, error) {
	var row datamodel.ExpenseCategory
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
