package http

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/sealbox/internal/config"
	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/sealbox/internal/crypto/http"
	"github.com/allisson/sealbox/internal/metrics"
	secretsDomain "github.com/allisson/sealbox/internal/secrets/domain"
	secretsHTTP "github.com/allisson/sealbox/internal/secrets/http"
	userDomain "github.com/allisson/sealbox/internal/user/domain"
	userHTTP "github.com/allisson/sealbox/internal/user/http"
	userUseCase "github.com/allisson/sealbox/internal/user/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// MockUserUseCase is a mock implementation of the user UseCase interface.
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) RegisterUser(
	ctx context.Context,
	input userUseCase.RegisterUserInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(
	ctx context.Context,
	input userUseCase.LoginInput,
) (string, time.Time, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockUserUseCase) Authenticate(
	ctx context.Context,
	plainToken string,
) (*userDomain.User, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockSecretUseCase is a mock implementation of the SecretUseCase interface.
type MockSecretUseCase struct {
	mock.Mock
}

func (m *MockSecretUseCase) CreateOrUpdate(
	ctx context.Context,
	path string,
	value []byte,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, path, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretUseCase) Get(ctx context.Context, path string) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretUseCase) GetByVersion(
	ctx context.Context,
	path string,
	version uint,
) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, path, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

func (m *MockSecretUseCase) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockSecretUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

// createTestServer builds a full API server backed by mocked use cases.
func createTestServer(t *testing.T, userUC *MockUserUseCase, secretUC *MockSecretUseCase) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	material := make([]byte, 32)
	_, err := rand.Read(material)
	require.NoError(t, err)

	ring, err := cryptoDomain.NewKeyRing(map[string]string{
		"app": hex.EncodeToString(material),
	}, "app")
	require.NoError(t, err)

	cfg := &config.Config{
		ServerHost:       "localhost",
		ServerPort:       0,
		RateLimitEnabled: false,
	}

	return NewServer(
		cfg,
		logger,
		nil,
		userUC,
		userHTTP.NewUserHandler(userUC, logger),
		secretsHTTP.NewSecretHandler(secretUC, logger),
		cryptoHTTP.NewKeyHandler(ring, logger),
	)
}

func TestServer_HealthEndpoint(t *testing.T) {
	server := createTestServer(t, new(MockUserUseCase), new(MockSecretUseCase))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestServer_AuthenticatedRoutesRequireToken(t *testing.T) {
	userUC := new(MockUserUseCase)
	secretUC := new(MockSecretUseCase)
	server := createTestServer(t, userUC, secretUC)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/keys"},
		{http.MethodGet, "/v1/secrets"},
		{http.MethodGet, "/v1/secrets/app/api-key"},
		{http.MethodPost, "/v1/secrets/app/api-key"},
		{http.MethodDelete, "/v1/secrets/app/api-key"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(route.method, route.path, nil)
			server.GetHandler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	secretUC.AssertNotCalled(t, "Get")
	secretUC.AssertNotCalled(t, "List")
}

func TestServer_AuthenticatedRequest(t *testing.T) {
	userUC := new(MockUserUseCase)
	secretUC := new(MockSecretUseCase)
	server := createTestServer(t, userUC, secretUC)

	user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "jane@example.com"}
	userUC.On("Authenticate", mock.Anything, "valid-token").Return(user, nil)

	t.Run("key listing", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/keys", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"default_key_id":"app"`)
	})

	t.Run("secret retrieval", func(t *testing.T) {
		secret := &secretsDomain.Secret{
			ID:        uuid.Must(uuid.NewV7()),
			Path:      "app/api-key",
			Version:   1,
			Plaintext: []byte("value"),
			CreatedAt: time.Now().UTC(),
		}
		secretUC.On("Get", mock.Anything, "app/api-key").Return(secret, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/secrets/app/api-key", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestServer_PublicRoutes(t *testing.T) {
	userUC := new(MockUserUseCase)
	secretUC := new(MockSecretUseCase)
	server := createTestServer(t, userUC, secretUC)

	// Login is reachable without a token; bad credentials come back 401
	// from the use case, not from the auth middleware.
	userUC.On("Login", mock.Anything, mock.Anything).
		Return("", time.Time{}, userDomain.ErrInvalidCredentials)

	body, err := json.Marshal(gin.H{"email": "jane@example.com", "password": "guess"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	userUC.AssertCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestServer_NotFoundEndpoint(t *testing.T) {
	server := createTestServer(t, new(MockUserUseCase), new(MockSecretUseCase))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_NoMetricsEndpoint(t *testing.T) {
	// The API server never exposes /metrics; that lives on the
	// dedicated metrics server.
	server := createTestServer(t, new(MockUserUseCase), new(MockSecretUseCase))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer(t, new(MockUserUseCase), new(MockSecretUseCase))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	// Shutdown server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	// Verify no startup errors
	select {
	case err := <-errChan:
		t.Fatalf("server startup failed: %v", err)
	default:
		// No error, good
	}
}

func TestCustomLoggerMiddleware(t *testing.T) {
	// Create a test logger that discards output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "test", response["message"])
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	// Should not panic - Recovery middleware catches it
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	server := createTestServer(t, new(MockUserUseCase), new(MockSecretUseCase))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// Verify X-Request-Id header is present
	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID, "X-Request-Id header should be present")
}

func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Create metrics provider
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	// Create metrics server
	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	// Test the handler from metricsServer exactly as it's configured
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
