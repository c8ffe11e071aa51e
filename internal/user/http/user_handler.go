package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/sealbox/internal/httputil"
	"github.com/allisson/sealbox/internal/user/http/dto"
	userUseCase "github.com/allisson/sealbox/internal/user/usecase"
)

// UserHandler handles user registration and login HTTP requests.
type UserHandler struct {
	userUseCase userUseCase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(uc userUseCase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: uc,
		logger:      logger,
	}
}

// RegisterHandler handles user registration.
// POST /v1/users
// Returns 201 Created with the user representation (no password fields).
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), dto.ToRegisterUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// LoginHandler handles user login.
// POST /v1/login
// Returns 200 OK with the plain session token and its expiration time.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	plainToken, expiresAt, err := h.userUseCase.Login(c.Request.Context(), dto.ToLoginInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoginResponse(plainToken, expiresAt))
}
