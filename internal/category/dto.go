package category

import "github.com/shopspring/decimal"

type CategoryResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      *string          `json:"description,omitempty"`
	Code             *string          `json:"code,omitempty"`
	MaxAmount        *decimal.Decimal `json:"max_amount,omitempty"`
	RequiresApproval bool             `json:"requires_approval"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
