package category

import (
	"context"
	"log/slog"

	datamodel "github.com/gastora/expense-api/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetActiveByCompany(ctx context.Context, companyID string) ([]*datamodel.ExpenseCategory, error)
	GetByID(ctx context.Context, id, companyID string) (*datamodel.ExpenseCategory, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetCompanyCategories lists the active categories of a company.
func (s *Service) GetCompanyCategories(ctx context.Context, companyID string) ([]CategoryResponse, error) {
	rows, err := s.repo.GetActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err, "company_id", companyID)
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, FromDataModel(row).ToResponse())
	}
	return responses, nil
}

// IsValidCategory reports whether the id names an active category of
// the company.
func (s *Service) IsValidCategory(ctx context.Context, id, companyID string) bool {
	row, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil || row == nil {
		return false
	}
	return row.IsActive
}
