// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	docDomain "github.com/allisson/docgen/internal/document/domain"
)

// MockDocumentUseCase is a mock implementation of DocumentUseCase for testing.
type MockDocumentUseCase struct {
	mock.Mock
}

// Generate mocks the Generate method of DocumentUseCase.
func (m *MockDocumentUseCase) Generate(
	ctx context.Context,
	input *docDomain.GenerationInput,
) (*docDomain.GeneratedDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.GeneratedDocument), args.Error(1)
}

// Load mocks the Load method of DocumentUseCase.
func (m *MockDocumentUseCase) Load(
	ctx context.Context,
	documentID string,
) (*docDomain.GeneratedDocument, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.GeneratedDocument), args.Error(1)
}
