package app

import (
	"fmt"

	userHTTP "github.com/allisson/sealbox/internal/user/http"
	userRepository "github.com/allisson/sealbox/internal/user/repository"
	userService "github.com/allisson/sealbox/internal/user/service"
	userUseCase "github.com/allisson/sealbox/internal/user/usecase"
)

// UserRepository returns the user repository based on database driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepository"]; exists {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// TokenRepository returns the session token repository based on database driver.
func (c *Container) TokenRepository() (userUseCase.TokenRepository, error) {
	var err error
	c.tokenRepositoryInit.Do(func() {
		c.tokenRepository, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenRepository"]; exists {
		return nil, storedErr
	}
	return c.tokenRepository, nil
}

// TokenService returns the session token service.
func (c *Container) TokenService() userService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = userService.NewTokenService()
	})
	return c.tokenService
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUC, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUC, nil
}

// UserHandler returns the HTTP handler for user registration and login.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	var err error
	c.userHandlerInit.Do(func() {
		c.userHandler, err = c.initUserHandler()
		if err != nil {
			c.initErrors["userHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userHandler"]; exists {
		return nil, storedErr
	}
	return c.userHandler, nil
}

// initUserRepository creates the user repository for the configured driver.
func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenRepository creates the token repository for the configured driver.
func (c *Container) initTokenRepository() (userUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLTokenRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (userUseCase.UseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for user use case: %w", err)
	}

	useCase, err := userUseCase.NewUserUseCase(
		userRepo,
		tokenRepo,
		c.TokenService(),
		c.config.AuthTokenExpiration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user use case: %w", err)
	}

	return useCase, nil
}

// initUserHandler creates the user HTTP handler.
func (c *Container) initUserHandler() (*userHTTP.UserHandler, error) {
	useCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
	}

	return userHTTP.NewUserHandler(useCase, c.Logger()), nil
}
