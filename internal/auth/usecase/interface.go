// Package usecase implements the request authorization decision logic.
// The authorizer orchestrates token verification into the allow/deny policy
// the API gateway enforces; it never fails past its own boundary.
package usecase

import (
	"context"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
)

// AuthorizerUseCase produces an allow/deny decision for an inbound request.
type AuthorizerUseCase interface {
	// Authorize verifies the credential and returns the policy decision for
	// methodARN. It never returns an error: every internal fault collapses to
	// a Deny decision, because a thrown fault from the authorization boundary
	// must not be interpreted as implicit allow.
	Authorize(ctx context.Context, credential, methodARN string) *authDomain.AuthorizationDecision
}
