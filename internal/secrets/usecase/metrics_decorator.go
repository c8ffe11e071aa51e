package usecase

import (
	"context"
	"time"

	"github.com/allisson/sealbox/internal/metrics"
	secretsDomain "github.com/allisson/sealbox/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the count and duration for a completed operation.
func (s *secretUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "secrets", operation, status)
	s.metrics.RecordDuration(ctx, "secrets", operation, time.Since(start), status)
}

// CreateOrUpdate records metrics for secret creation/update operations.
func (s *secretUseCaseWithMetrics) CreateOrUpdate(
	ctx context.Context,
	path string,
	value []byte,
) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.CreateOrUpdate(ctx, path, value)
	s.record(ctx, "secret_create", start, err)
	return secret, err
}

// Get records metrics for secret retrieval operations.
func (s *secretUseCaseWithMetrics) Get(ctx context.Context, path string) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Get(ctx, path)
	s.record(ctx, "secret_get", start, err)
	return secret, err
}

// GetByVersion records metrics for versioned secret retrieval operations.
func (s *secretUseCaseWithMetrics) GetByVersion(
	ctx context.Context,
	path string,
	version uint,
) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.GetByVersion(ctx, path, version)
	s.record(ctx, "secret_get_version", start, err)
	return secret, err
}

// Delete records metrics for secret deletion operations.
func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := s.next.Delete(ctx, path)
	s.record(ctx, "secret_delete", start, err)
	return err
}

// List records metrics for secret listing operations.
func (s *secretUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	start := time.Now()
	secrets, err := s.next.List(ctx, offset, limit)
	s.record(ctx, "secret_list", start, err)
	return secrets, err
}
