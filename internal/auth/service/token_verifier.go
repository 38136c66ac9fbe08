package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
	apperrors "github.com/allisson/docgen/internal/errors"
)

// rsaSigningMethods are the only algorithms accepted for bearer credentials;
// the authority publishes RSA keys.
var rsaSigningMethods = []string{"RS256", "RS384", "RS512"}

// TokenVerifier validates a bearer credential against the authority's signing
// key set.
//
// A nil return means the credential is authentic, has the expected audience,
// and carries both subject and tenant claims. Any non-nil return means "not
// authenticated"; the error only exists so callers can log the reason and
// distinguish signing-key configuration problems from ordinary failures.
type TokenVerifier interface {
	Verify(ctx context.Context, credential string) error
}

// jwtTokenVerifier implements TokenVerifier using golang-jwt.
type jwtTokenVerifier struct {
	keySet   KeySetClient
	audience string
}

// NewTokenVerifier creates a verifier that resolves signing keys through the
// given key set client and requires the given audience claim.
func NewTokenVerifier(keySet KeySetClient, audience string) TokenVerifier {
	return &jwtTokenVerifier{
		keySet:   keySet,
		audience: audience,
	}
}

// Verify checks the credential's signature, audience and required claims.
func (v *jwtTokenVerifier) Verify(ctx context.Context, credential string) error {
	// Split "<scheme> <token>"; malformed input fails closed.
	parts := strings.SplitN(credential, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return apperrors.Wrap(authDomain.ErrMalformedCredential, "credential has no scheme separator")
	}
	token := parts[1]

	parser := jwt.NewParser(
		jwt.WithValidMethods(rsaSigningMethods),
		jwt.WithAudience(v.audience),
	)

	claims := jwt.MapClaims{}
	if _, err := parser.ParseWithClaims(token, claims, v.signingKey(ctx)); err != nil {
		// Key-set conditions keep their identity so the caller can log
		// rotation skew at elevated severity; everything else collapses.
		if apperrors.Is(err, authDomain.ErrSigningKeyNotFound) ||
			apperrors.Is(err, authDomain.ErrKeySetUnavailable) {
			return err
		}
		return apperrors.Wrap(err, "token verification failed")
	}

	if _, ok := claims["sub"]; !ok {
		return fmt.Errorf("%w: sub", authDomain.ErrMissingRequiredClaims)
	}
	if _, ok := claims["tenant"]; !ok {
		return fmt.Errorf("%w: tenant", authDomain.ErrMissingRequiredClaims)
	}

	return nil
}

// signingKey resolves the verification key for a parsed token header.
func (v *jwtTokenVerifier) signingKey(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, apperrors.Wrap(authDomain.ErrMalformedCredential, "token header has no kid")
		}
		return v.keySet.Key(ctx, kid)
	}
}
