package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/sealbox/internal/errors"
	"github.com/allisson/sealbox/internal/user/domain"
	"github.com/allisson/sealbox/internal/user/service"
	appValidation "github.com/allisson/sealbox/internal/validation"
)

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	userRepo        UserRepository
	tokenRepo       TokenRepository
	tokenService    service.TokenService
	passwordHasher  *pwdhash.PasswordHasher
	tokenExpiration time.Duration
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	tokenService service.TokenService,
	tokenExpiration time.Duration,
) (UseCase, error) {
	// Interactive policy: suitable for per-request password verification.
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCase{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		tokenService:    tokenService,
		passwordHasher:  hasher,
		tokenExpiration: tokenExpiration,
	}, nil
}

// validateRegisterUserInput validates registration input: required fields,
// email format, and password strength (min 8 chars, upper, lower, number,
// special character).
func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser registers a new user with a hashed password.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(strings.ToLower(input.Email)),
		Password: hashedPassword,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and issues a new session token.
//
// An unknown email verifies against a throwaway hash so the two failure
// paths take comparable time, and both return ErrInvalidCredentials.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (string, time.Time, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			_, _ = uc.passwordHasher.Hash([]byte(input.Password))
			return "", time.Time{}, domain.ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(input.Password), user.Password)
	if err != nil || !ok {
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := uc.tokenService.GenerateToken()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now().UTC()
	token := &domain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		UserID:    user.ID,
		ExpiresAt: now.Add(uc.tokenExpiration),
		CreatedAt: now,
	}

	if err := uc.tokenRepo.Create(ctx, token); err != nil {
		return "", time.Time{}, err
	}

	return plainToken, token.ExpiresAt, nil
}

// Authenticate resolves a plain session token to its user.
func (uc *UserUseCase) Authenticate(ctx context.Context, plainToken string) (*domain.User, error) {
	if plainToken == "" {
		return nil, domain.ErrInvalidToken
	}

	token, err := uc.tokenRepo.GetByHash(ctx, uc.tokenService.HashToken(plainToken))
	if err != nil {
		return nil, err
	}

	if token.Expired(time.Now().UTC()) {
		return nil, domain.ErrInvalidToken
	}

	user, err := uc.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}
