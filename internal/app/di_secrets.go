package app

import (
	"fmt"

	secretsHTTP "github.com/allisson/sealbox/internal/secrets/http"
	secretsRepository "github.com/allisson/sealbox/internal/secrets/repository"
	secretsUseCase "github.com/allisson/sealbox/internal/secrets/usecase"
)

// SecretRepository returns the secret repository based on database driver.
func (c *Container) SecretRepository() (secretsUseCase.SecretRepository, error) {
	var err error
	c.secretRepositoryInit.Do(func() {
		c.secretRepository, err = c.initSecretRepository()
		if err != nil {
			c.initErrors["secretRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretRepository"]; exists {
		return nil, storedErr
	}
	return c.secretRepository, nil
}

// SecretUseCase returns the secret use case wrapped with business metrics.
func (c *Container) SecretUseCase() (secretsUseCase.SecretUseCase, error) {
	var err error
	c.secretUseCaseInit.Do(func() {
		c.secretUseCase, err = c.initSecretUseCase()
		if err != nil {
			c.initErrors["secretUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

// SecretHandler returns the HTTP handler for secret management operations.
func (c *Container) SecretHandler() (*secretsHTTP.SecretHandler, error) {
	var err error
	c.secretHandlerInit.Do(func() {
		c.secretHandler, err = c.initSecretHandler()
		if err != nil {
			c.initErrors["secretHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretHandler"]; exists {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

// initSecretRepository creates the secret repository for the configured driver.
func (c *Container) initSecretRepository() (secretsUseCase.SecretRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return secretsRepository.NewMySQLSecretRepository(db), nil
	case "postgres":
		return secretsRepository.NewPostgreSQLSecretRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSecretUseCase creates the secret use case with all its dependencies.
func (c *Container) initSecretUseCase() (secretsUseCase.SecretUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secret use case: %w", err)
	}

	secretRepo, err := c.SecretRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret repository for secret use case: %w", err)
	}

	encryptor, err := c.EnvelopeService()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope service for secret use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for secret use case: %w", err)
	}

	useCase := secretsUseCase.NewSecretUseCase(txManager, secretRepo, encryptor)
	return secretsUseCase.NewSecretUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initSecretHandler creates the secret HTTP handler.
func (c *Container) initSecretHandler() (*secretsHTTP.SecretHandler, error) {
	useCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for secret handler: %w", err)
	}

	return secretsHTTP.NewSecretHandler(useCase, c.Logger()), nil
}
