// Package http provides HTTP handlers for document generation and lookup.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/docgen/internal/document/http/dto"
	docUsecase "github.com/allisson/docgen/internal/document/usecase"
	"github.com/allisson/docgen/internal/httputil"
	customValidation "github.com/allisson/docgen/internal/validation"
)

// DocumentHandler handles HTTP requests for document generation and lookup.
type DocumentHandler struct {
	documentUseCase docUsecase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler with required dependencies.
func NewDocumentHandler(documentUseCase docUsecase.DocumentUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// GenerateHandler runs the generation pipeline for one request.
// POST /generate
// Returns 200 with the document id and its public URL.
func (h *DocumentHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateDocumentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	document, err := h.documentUseCase.Generate(c.Request.Context(), dto.ToGenerationInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}

// LoadHandler returns the record of a previously generated document.
// GET /load?document=<document_id>
func (h *DocumentHandler) LoadHandler(c *gin.Context) {
	documentID := c.Query("document")

	document, err := h.documentUseCase.Load(c.Request.Context(), documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(document))
}
