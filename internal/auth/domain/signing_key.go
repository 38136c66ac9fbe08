package domain

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
)

// SigningKey is a public key descriptor from the authority's published key set.
// Only the attributes needed for RSA signature verification are consumed.
type SigningKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// KeySet is the authority-published collection of signing keys.
type KeySet struct {
	Keys []SigningKey `json:"keys"`
}

// RSAPublicKey decodes the modulus and exponent into a usable public key.
func (k SigningKey) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q for kid %q", k.Kty, k.Kid)
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus for kid %q: %w", k.Kid, err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent for kid %q: %w", k.Kid, err)
	}

	e := new(big.Int).SetBytes(eBytes)
	if !e.IsInt64() || e.Int64() <= 0 {
		return nil, fmt.Errorf("invalid exponent for kid %q", k.Kid)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(e.Int64()),
	}, nil
}
