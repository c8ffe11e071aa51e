// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"time"

	"github.com/allisson/sealbox/internal/user/domain"
	"github.com/allisson/sealbox/internal/user/usecase"
)

// ToRegisterUserInput converts a RegisterUserRequest DTO to a RegisterUserInput use case input.
func ToRegisterUserInput(req RegisterUserRequest) usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToLoginInput converts a LoginRequest DTO to a LoginInput use case input.
func ToLoginInput(req LoginRequest) usecase.LoginInput {
	return usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToUserResponse converts a domain User model to a UserResponse DTO.
// This enforces the boundary between internal domain models and external API contracts.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToLoginResponse builds the login response from the issued token.
func ToLoginResponse(plainToken string, expiresAt time.Time) LoginResponse {
	return LoginResponse{
		Token:     plainToken,
		ExpiresAt: expiresAt,
	}
}
