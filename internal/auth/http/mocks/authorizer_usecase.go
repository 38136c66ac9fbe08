// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
)

// MockAuthorizerUseCase is a mock implementation of AuthorizerUseCase for testing.
type MockAuthorizerUseCase struct {
	mock.Mock
}

// Authorize mocks the Authorize method of AuthorizerUseCase.
func (m *MockAuthorizerUseCase) Authorize(
	ctx context.Context,
	credential, methodARN string,
) *authDomain.AuthorizationDecision {
	args := m.Called(ctx, credential, methodARN)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*authDomain.AuthorizationDecision)
}
