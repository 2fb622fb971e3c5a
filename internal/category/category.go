package category

import (
	"time"

	"github.com/shopspring/decimal"

	datamodel "github.com/gastora/expense-api/internal/core/datamodel/category"
)

// Category is a company-scoped expense classification.
type Category struct {
	ID               string           `json:"id"`
	CompanyID        string           `json:"company_id"`
	Name             string           `json:"name"`
	Description      *string          `json:"description,omitempty"`
	Code             *string          `json:"code,omitempty"`
	MaxAmount        *decimal.Decimal `json:"max_amount,omitempty"`
	RequiresApproval bool             `json:"requires_approval"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		Code:             c.Code,
		MaxAmount:        c.MaxAmount,
		RequiresApproval: c.RequiresApproval,
	}
}

func ToDataModel(c *Category) *datamodel.ExpenseCategory {
	return &datamodel.ExpenseCategory{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		Description:      c.Description,
		Code:             c.Code,
		MaxAmount:        c.MaxAmount,
		RequiresApproval: c.RequiresApproval,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func FromDataModel(c *datamodel.ExpenseCategory) *Category {
	return &Category{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		Description:      c.Description,
		Code:             c.Code,
		MaxAmount:        c.MaxAmount,
		RequiresApproval: c.RequiresApproval,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
