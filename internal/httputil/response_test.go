package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/docgen/internal/errors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"NotFound", apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"InvalidInput", apperrors.Wrap(apperrors.ErrInvalidInput, "html_template_name is missing"), http.StatusUnprocessableEntity, "invalid_input"},
		{"Unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"Upstream", apperrors.Wrap(apperrors.ErrUpstream, "template download"), http.StatusBadGateway, "upstream_error"},
		{"Render", apperrors.Wrap(apperrors.ErrRender, "unsupported css"), http.StatusInternalServerError, "render_error"},
		{"Persistence", apperrors.Wrap(apperrors.ErrPersistence, "repository write"), http.StatusInternalServerError, "persistence_error"},
		{"Unknown", apperrors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}

	t.Run("NilErrorWritesNothing", func(t *testing.T) {
		c, w := newTestContext(t)

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.Bytes())
	})
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext(t)

	HandleValidationErrorGin(c, apperrors.New("document query parameter is missing"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)
	assert.Equal(t, "document query parameter is missing", resp.Message)
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext(t)

	HandleBadRequestGin(c, apperrors.New("invalid json"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
