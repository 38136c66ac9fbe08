package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
	"github.com/allisson/docgen/internal/metrics"
)

// authorizerUseCaseWithMetrics decorates AuthorizerUseCase with metrics instrumentation.
type authorizerUseCaseWithMetrics struct {
	next    AuthorizerUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthorizerUseCaseWithMetrics wraps an AuthorizerUseCase with metrics recording.
func NewAuthorizerUseCaseWithMetrics(useCase AuthorizerUseCase, m metrics.BusinessMetrics) AuthorizerUseCase {
	return &authorizerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authorize records allow/deny counts and decision latency.
func (a *authorizerUseCaseWithMetrics) Authorize(
	ctx context.Context,
	credential, methodARN string,
) *authDomain.AuthorizationDecision {
	start := time.Now()
	decision := a.next.Authorize(ctx, credential, methodARN)

	status := "deny"
	if decision.Allowed() {
		status = "allow"
	}

	a.metrics.RecordOperation(ctx, "auth", "authorize", status)
	a.metrics.RecordDuration(ctx, "auth", "authorize", time.Since(start), status)

	return decision
}
