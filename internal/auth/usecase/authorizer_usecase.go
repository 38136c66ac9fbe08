package usecase

import (
	"context"
	"log/slog"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
	authService "github.com/allisson/docgen/internal/auth/service"
	apperrors "github.com/allisson/docgen/internal/errors"
)

// principalID is the principal attached to every decision. The original
// gateway contract identifies callers by their token claims, not by principal.
const principalID = "user"

// authorizerUseCase implements AuthorizerUseCase on top of a TokenVerifier.
type authorizerUseCase struct {
	verifier authService.TokenVerifier
	logger   *slog.Logger
}

// NewAuthorizerUseCase creates the request authorizer.
func NewAuthorizerUseCase(verifier authService.TokenVerifier, logger *slog.Logger) AuthorizerUseCase {
	return &authorizerUseCase{
		verifier: verifier,
		logger:   logger,
	}
}

// Authorize verifies the credential and maps the outcome onto an Allow or Deny
// policy for methodARN.
func (a *authorizerUseCase) Authorize(
	ctx context.Context,
	credential, methodARN string,
) (decision *authDomain.AuthorizationDecision) {
	// The authorization boundary must not panic past itself.
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("authorizer fault, denying request", slog.Any("panic", r))
			decision = authDomain.NewDecision(principalID, authDomain.EffectDeny, methodARN)
		}
	}()

	if credential == "" {
		a.logger.Info("request is not authenticated", slog.String("reason", "missing credential"))
		return authDomain.NewDecision(principalID, authDomain.EffectDeny, methodARN)
	}

	// No verifier means no authority to check against. Fail closed.
	if a.verifier == nil {
		a.logger.Error("token verifier is not configured, denying request")
		return authDomain.NewDecision(principalID, authDomain.EffectDeny, methodARN)
	}

	err := a.verifier.Verify(ctx, credential)
	if err == nil {
		a.logger.Info("request is authenticated")
		return authDomain.NewDecision(principalID, authDomain.EffectAllow, methodARN)
	}

	// A kid missing from the published set may indicate key-rotation skew
	// between the authority and its key set endpoint; operators need to see
	// it even though the net effect is an ordinary Deny.
	if apperrors.Is(err, authDomain.ErrSigningKeyNotFound) {
		a.logger.Error("signing key absent from authority key set", slog.Any("error", err))
	} else {
		a.logger.Warn("request is not authenticated", slog.Any("error", err))
	}

	return authDomain.NewDecision(principalID, authDomain.EffectDeny, methodARN)
}
