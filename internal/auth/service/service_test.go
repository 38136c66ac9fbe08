package service

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
)

// keySetFixture serves a signing key set for a generated RSA key pair and
// counts how many times the endpoint was hit.
type keySetFixture struct {
	privateKey *rsa.PrivateKey
	kid        string
	server     *httptest.Server
	fetchCount atomic.Int64
}

func newKeySetFixture(t *testing.T) *keySetFixture {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &keySetFixture{
		privateKey: privateKey,
		kid:        "fixture-key-1",
	}

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.fetchCount.Add(1)

		keySet := authDomain.KeySet{
			Keys: []authDomain.SigningKey{
				{
					Kty: "RSA",
					Kid: f.kid,
					Use: "sig",
					N:   base64.RawURLEncoding.EncodeToString(privateKey.PublicKey.N.Bytes()),
					E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(privateKey.PublicKey.E)).Bytes()),
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(keySet)
	}))
	t.Cleanup(f.server.Close)

	return f
}

// signedCredential issues a "Bearer <jwt>" credential signed by the fixture key.
func (f *keySetFixture) signedCredential(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = f.kid

	signed, err := token.SignedString(f.privateKey)
	require.NoError(t, err)

	return "Bearer " + signed
}

// defaultClaims returns a claim set that passes verification for audience.
func defaultClaims(audience string) jwt.MapClaims {
	return jwt.MapClaims{
		"aud":    audience,
		"sub":    "user-123",
		"tenant": "tenant-abc",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
}
