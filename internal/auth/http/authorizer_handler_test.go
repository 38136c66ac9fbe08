package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/docgen/internal/auth/domain"
	"github.com/allisson/docgen/internal/auth/http/mocks"
)

const testMethodARN = "arn:aws:execute-api:us-east-1:123456789012:api/prod/POST/generate"

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*AuthorizerHandler, *mocks.MockAuthorizerUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockAuthorizerUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthorizerHandler(mockUseCase, logger), mockUseCase
}

// createTestContext builds a gin context around a JSON request body.
func createTestContext(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestAuthorizerHandler_AuthorizeHandler(t *testing.T) {
	t.Run("AllowDecision", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		allow := authDomain.NewDecision("user", authDomain.EffectAllow, testMethodARN)
		mockUseCase.On("Authorize", mock.Anything, "Bearer token", testMethodARN).
			Return(allow).
			Once()

		c, w := createTestContext(t, http.MethodPost, "/authorize", AuthorizeRequest{
			Headers:   map[string]string{"Authorization": "Bearer token"},
			MethodARN: testMethodARN,
		})

		handler.AuthorizeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var decision authDomain.AuthorizationDecision
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decision))
		assert.Equal(t, "user", decision.PrincipalID)
		require.NotNil(t, decision.PolicyDocument)
		assert.Equal(t, authDomain.EffectAllow, decision.PolicyDocument.Statement[0].Effect)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("DenyDecisionIsStill200", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		deny := authDomain.NewDecision("user", authDomain.EffectDeny, testMethodARN)
		mockUseCase.On("Authorize", mock.Anything, "", testMethodARN).
			Return(deny).
			Once()

		c, w := createTestContext(t, http.MethodPost, "/authorize", AuthorizeRequest{
			Headers:   map[string]string{},
			MethodARN: testMethodARN,
		})

		handler.AuthorizeHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var decision authDomain.AuthorizationDecision
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decision))
		require.NotNil(t, decision.PolicyDocument)
		assert.Equal(t, authDomain.EffectDeny, decision.PolicyDocument.Statement[0].Effect)
	})

	t.Run("MissingMethodARNFailsValidation", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(t, http.MethodPost, "/authorize", AuthorizeRequest{
			Headers: map[string]string{"Authorization": "Bearer token"},
		})

		handler.AuthorizeHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Authorize")
	})

	t.Run("MalformedBodyIsBadRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/authorize", bytes.NewReader([]byte("{not json")))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.AuthorizeHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "Authorize")
	})
}
