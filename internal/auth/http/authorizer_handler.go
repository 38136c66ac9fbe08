// Package http provides the gateway-integration authorizer endpoint and the
// authentication middleware guarding the document routes.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	authUseCase "github.com/allisson/docgen/internal/auth/usecase"
	"github.com/allisson/docgen/internal/httputil"
	customValidation "github.com/allisson/docgen/internal/validation"
)

// AuthorizerHandler handles gateway authorization events.
type AuthorizerHandler struct {
	authorizerUseCase authUseCase.AuthorizerUseCase
	logger            *slog.Logger
}

// NewAuthorizerHandler creates a new authorizer handler with required dependencies.
func NewAuthorizerHandler(
	authorizerUseCase authUseCase.AuthorizerUseCase,
	logger *slog.Logger,
) *AuthorizerHandler {
	return &AuthorizerHandler{
		authorizerUseCase: authorizerUseCase,
		logger:            logger,
	}
}

// AuthorizeRequest is the gateway authorization event: the inbound request
// headers and the ARN of the method being invoked.
type AuthorizeRequest struct {
	Headers   map[string]string `json:"headers"`
	MethodARN string            `json:"methodArn"`
}

// Validate checks if the authorize request is valid.
func (r *AuthorizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.MethodARN,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// AuthorizeHandler produces the allow/deny policy decision for a gateway event.
// POST /authorize
// Always returns 200 with a policy response; Allow and Deny are both valid
// outcomes of a successful authorization call (gateway semantics).
func (h *AuthorizerHandler) AuthorizeHandler(c *gin.Context) {
	var req AuthorizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	decision := h.authorizerUseCase.Authorize(
		c.Request.Context(),
		req.Headers["Authorization"],
		req.MethodARN,
	)

	c.JSON(http.StatusOK, decision)
}
