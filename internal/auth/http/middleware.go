package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/docgen/internal/auth/usecase"
	apperrors "github.com/allisson/docgen/internal/errors"
	"github.com/allisson/docgen/internal/httputil"
)

// AuthenticationMiddleware guards a route with the request authorizer.
//
// The Authorization header carries the bearer credential; the request method
// and path stand in for the gateway method ARN. A Deny decision aborts the
// request with 401; handlers behind the middleware only ever see requests the
// authorizer allowed.
func AuthenticationMiddleware(
	authorizerUseCase authUseCase.AuthorizerUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader("Authorization")
		if credential == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		resource := c.Request.Method + " " + c.Request.URL.Path

		decision := authorizerUseCase.Authorize(c.Request.Context(), credential, resource)
		if !decision.Allowed() {
			logger.Debug("authentication failed: request denied",
				slog.String("resource", resource))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
