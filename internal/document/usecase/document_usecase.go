package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	docDomain "github.com/allisson/docgen/internal/document/domain"
	docService "github.com/allisson/docgen/internal/document/service"
	apperrors "github.com/allisson/docgen/internal/errors"
)

// documentUseCase implements DocumentUseCase.
type documentUseCase struct {
	templates    docService.TemplateStore
	renderer     docService.Renderer
	artifacts    docService.ArtifactStore
	documentRepo DocumentRepository
	baseURL      string
	logger       *slog.Logger
}

// NewDocumentUseCase creates the document use case with injected collaborators.
// baseURL is the public base under which stored artifact keys are reachable.
func NewDocumentUseCase(
	templates docService.TemplateStore,
	renderer docService.Renderer,
	artifacts docService.ArtifactStore,
	documentRepo DocumentRepository,
	baseURL string,
	logger *slog.Logger,
) DocumentUseCase {
	return &documentUseCase{
		templates:    templates,
		renderer:     renderer,
		artifacts:    artifacts,
		documentRepo: documentRepo,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		logger:       logger,
	}
}

// Generate runs the pipeline for one generation request.
func (u *documentUseCase) Generate(
	ctx context.Context,
	input *docDomain.GenerationInput,
) (*docDomain.GeneratedDocument, error) {
	// Fail before any external call on missing template names.
	if input.HTMLTemplateName == "" || input.CSSTemplateName == "" {
		return nil, fmt.Errorf("%w: html_template_name or css_template_name is missing", apperrors.ErrInvalidInput)
	}

	// The two templates are independent objects, fetch them concurrently.
	var htmlTemplate, cssTemplate string
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var fetchErr error
		htmlTemplate, fetchErr = u.templates.Fetch(groupCtx, input.HTMLTemplateName)
		return fetchErr
	})
	group.Go(func() error {
		var fetchErr error
		cssTemplate, fetchErr = u.templates.Fetch(groupCtx, input.CSSTemplateName)
		return fetchErr
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	pdf, err := u.renderer.Render(ctx, htmlTemplate, cssTemplate, input.Variables)
	if err != nil {
		return nil, err
	}

	// Every generation gets a fresh artifact key, even for a repeated
	// document id.
	pdfKey := docDomain.ArtifactPrefix + uuid.NewString() + ".pdf"

	u.logger.Info("uploading generated pdf",
		slog.String("pdf_key", pdfKey),
		slog.String("document_id", input.DocumentID),
	)

	if err := u.artifacts.Store(ctx, pdfKey, pdf, input.DocumentID); err != nil {
		return nil, err
	}

	variables, err := json.Marshal(input.Variables)
	if err != nil {
		return nil, fmt.Errorf("%w: variables are not serializable: %v", apperrors.ErrInvalidInput, err)
	}

	document := &docDomain.GeneratedDocument{
		DocumentID:  input.DocumentID,
		PdfKey:      pdfKey,
		DocumentURL: u.baseURL + "/" + pdfKey,
		Variables:   string(variables),
	}

	if err := u.documentRepo.Upsert(ctx, document); err != nil {
		// Compensate the already-uploaded artifact so a failed record write
		// does not strand a blob. Best-effort: the process dying between the
		// two calls can still orphan an artifact.
		if delErr := u.artifacts.Delete(ctx, pdfKey); delErr != nil {
			u.logger.Error("orphaned artifact after failed record write",
				slog.String("pdf_key", pdfKey),
				slog.Any("error", delErr),
			)
		}
		return nil, err
	}

	return document, nil
}

// Load returns the persisted record for documentID.
func (u *documentUseCase) Load(ctx context.Context, documentID string) (*docDomain.GeneratedDocument, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document_id is missing", apperrors.ErrInvalidInput)
	}

	document, err := u.documentRepo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	u.logger.Info("document retrieved", slog.String("document_id", document.DocumentID))

	return document, nil
}
