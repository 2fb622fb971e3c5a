package auth

import (
	"strings"

	errors "github.com/gastora/expense-api/internal"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() *errors.AppError {
	if dto.Email == "" || !strings.Contains(dto.Email, "@") {
		return errors.NewValidationFieldError("email", "a valid email is required", errors.ErrCodeValidationFailed)
	}
	if dto.Password == "" {
		return errors.NewValidationFieldError("password", "password is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

type RegisterDTO struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
}

func (dto RegisterDTO) Validate() *errors.AppError {
	if dto.Email == "" || !strings.Contains(dto.Email, "@") {
		return errors.NewValidationFieldError("email", "a valid email is required", errors.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 8 {
		return errors.NewValidationFieldError("password", "password must be at least 8 characters", errors.ErrCodeValidationFailed)
	}
	if dto.CompanyName == "" {
		return errors.NewValidationFieldError("company_name", "company_name is required", errors.ErrCodeValidationFailed)
	}
	return nil
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
