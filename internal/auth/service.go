package auth

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/gastora/expense-api/internal"
	userDatamodel "github.com/gastora/expense-api/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetUserByEmail(email string) (*userDatamodel.User, error)
	GetUserByID(id string) (*userDatamodel.User, error)
	CreateCompany(company *userDatamodel.Company) error
	CreateUser(user *userDatamodel.User) error
	UpdateLastLogin(userID string, at time.Time) error
}

type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a company and its first administrator account.
func (s *Service) Register(dto RegisterDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetUserByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("registration rejected: email taken", "email", dto.Email)
		return nil, errors.ErrEmailTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	company := &userDatamodel.Company{
		ID:     uuid.NewString(),
		Name:   dto.CompanyName,
		Status: "active",
		Plan:   "trial",
	}
	if err := s.repo.CreateCompany(company); err != nil {
		s.logger.Error("failed to create company", "error", err)
		return nil, err
	}

	record := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		PasswordHash: hash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Role:         RoleAdmin,
		Status:       UserStatusActive,
		CompanyID:    company.ID,
	}
	if err := s.repo.CreateUser(record); err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("company registered", "company_id", company.ID, "admin_id", record.ID)
	return s.issueTokens(record)
}

func (s *Service) Login(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil || record == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if record.Status != UserStatusActive {
		return nil, errors.ErrUserInactive
	}

	if err := VerifyPassword(record.PasswordHash, dto.Password); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(record.ID, time.Now()); err != nil {
		s.logger.Warn("failed to update last login", "error", err, "user_id", record.ID)
	}

	return s.issueTokens(record)
}

func (s *Service) Refresh(refreshToken string) (*LoginResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetUserByID(claims.Subject)
	if err != nil || record == nil || record.Status != UserStatusActive {
		return nil, errors.ErrInvalidToken
	}

	return s.issueTokens(record)
}

// ResolvePrincipal validates an access token and returns the live
// principal, rejecting deactivated accounts.
func (s *Service) ResolvePrincipal(accessToken string) (*User, error) {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetUserByID(claims.Subject)
	if err != nil || record == nil {
		return nil, errors.ErrInvalidToken
	}
	if record.Status != UserStatusActive {
		return nil, errors.ErrUserInactive
	}

	return principalFrom(record), nil
}

func (s *Service) issueTokens(record *userDatamodel.User) (*LoginResponse, error) {
	principal := principalFrom(record)

	access, err := s.tokens.GenerateAccessToken(principal)
	if err != nil {
		return nil, errors.NewInternalError("failed to sign access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(principal)
	if err != nil {
		return nil, errors.NewInternalError("failed to sign refresh token", err)
	}

	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *principal,
	}, nil
}

func principalFrom(record *userDatamodel.User) *User {
	return &User{
		ID:        record.ID,
		Email:     record.Email,
		Role:      record.Role,
		CompanyID: record.CompanyID,
	}
}
