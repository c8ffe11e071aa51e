package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/sealbox/internal/errors"
	"github.com/allisson/sealbox/internal/httputil"
	userUseCase "github.com/allisson/sealbox/internal/user/usecase"
)

// AuthenticationMiddleware provides authentication via Bearer token in the
// Authorization header.
//
// The token is resolved through UseCase.Authenticate; on success the user
// is stored in the request context and can be retrieved with GetUser.
// Missing or malformed headers and unknown/expired tokens all result in
// 401 Unauthorized.
func AuthenticationMiddleware(userUC userUseCase.UseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive prefix)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		user, err := userUC.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", user.ID.String()))

		c.Next()
	}
}
