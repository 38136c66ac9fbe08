package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
	apperrors "github.com/allisson/docgen/internal/errors"
)

const testMethodARN = "arn:aws:execute-api:us-east-1:123456789012:api/prod/POST/generate"

// stubVerifier returns a canned verification result.
type stubVerifier struct {
	err error
}

func (s *stubVerifier) Verify(ctx context.Context, credential string) error {
	return s.err
}

// panicVerifier simulates an internal fault inside verification.
type panicVerifier struct{}

func (p *panicVerifier) Verify(ctx context.Context, credential string) error {
	panic("verifier fault")
}

func newTestAuthorizer(verifierErr error, buf *bytes.Buffer) AuthorizerUseCase {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return NewAuthorizerUseCase(&stubVerifier{err: verifierErr}, logger)
}

func TestAuthorizerUseCase_Authorize(t *testing.T) {
	t.Run("ValidCredentialAllows", func(t *testing.T) {
		authorizer := newTestAuthorizer(nil, &bytes.Buffer{})

		decision := authorizer.Authorize(context.Background(), "Bearer token", testMethodARN)

		require.NotNil(t, decision.PolicyDocument)
		assert.True(t, decision.Allowed())
		assert.Equal(t, testMethodARN, decision.PolicyDocument.Statement[0].Resource)
	})

	t.Run("FailedVerificationDenies", func(t *testing.T) {
		authorizer := newTestAuthorizer(apperrors.ErrUnauthorized, &bytes.Buffer{})

		decision := authorizer.Authorize(context.Background(), "Bearer token", testMethodARN)

		require.NotNil(t, decision.PolicyDocument)
		assert.False(t, decision.Allowed())
		assert.Equal(t, authDomain.EffectDeny, decision.PolicyDocument.Statement[0].Effect)
	})

	t.Run("MissingCredentialDenies", func(t *testing.T) {
		authorizer := newTestAuthorizer(nil, &bytes.Buffer{})

		decision := authorizer.Authorize(context.Background(), "", testMethodARN)

		assert.False(t, decision.Allowed())
	})

	t.Run("SigningKeyNotFoundDeniesAndLogsAtErrorLevel", func(t *testing.T) {
		var buf bytes.Buffer
		authorizer := newTestAuthorizer(
			apperrors.Wrap(authDomain.ErrSigningKeyNotFound, "kid abc"),
			&buf,
		)

		decision := authorizer.Authorize(context.Background(), "Bearer token", testMethodARN)

		assert.False(t, decision.Allowed())
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "signing key absent from authority key set")
	})

	t.Run("OrdinaryFailureLogsBelowErrorLevel", func(t *testing.T) {
		var buf bytes.Buffer
		authorizer := newTestAuthorizer(authDomain.ErrMissingRequiredClaims, &buf)

		decision := authorizer.Authorize(context.Background(), "Bearer token", testMethodARN)

		assert.False(t, decision.Allowed())
		assert.NotContains(t, buf.String(), "level=ERROR")
	})

	t.Run("MissingVerifierDenies", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		authorizer := NewAuthorizerUseCase(nil, logger)

		decision := authorizer.Authorize(context.Background(), "Bearer token", testMethodARN)

		require.NotNil(t, decision)
		assert.False(t, decision.Allowed())
	})

	t.Run("VerifierPanicCollapsesToDeny", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		authorizer := NewAuthorizerUseCase(&panicVerifier{}, logger)

		decision := authorizer.Authorize(context.Background(), "Bearer token", testMethodARN)

		require.NotNil(t, decision)
		assert.False(t, decision.Allowed())
	})
}
