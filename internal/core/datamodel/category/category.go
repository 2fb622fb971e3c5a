package category

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory struct {
	ID               string           `gorm:"type:uuid;primaryKey"`
	CompanyID        string           `gorm:"column:company_id;type:uuid;not null;index"`
	Name             string           `gorm:"not null"`
	Description      *string          `gorm:"type:text"`
	Code             *string          `gorm:"column:code"`
	MaxAmount        *decimal.Decimal `gorm:"column:max_amount;type:decimal(12,2)"`
	RequiresApproval bool             `gorm:"column:requires_approval;default:true"`
	IsActive         bool             `gorm:"column:is_active;default:true"`
	CreatedAt        time.Time        `gorm:"column:created_at"`
	UpdatedAt        time.Time        `gorm:"column:updated_at"`
}

func (ExpenseCategory) TableName() string {
	return "expense_categories"
}
