package user

import (
	"context"
	"fmt"

	datamodel "github.com/gastora/expense-api/internal/core/datamodel/user"
)

type Repository interface {
	GetByID(ctx context.Context, userID string) (*datamodel.User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(ctx context.Context, userID string) (*User, error) {
	row, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return FromDataModel(row), nil
}
