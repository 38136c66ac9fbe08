package usecase

import (
	"context"
	"time"

	docDomain "github.com/allisson/docgen/internal/document/domain"
	"github.com/allisson/docgen/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Generate records metrics for document generation operations.
func (d *documentUseCaseWithMetrics) Generate(
	ctx context.Context,
	input *docDomain.GenerationInput,
) (*docDomain.GeneratedDocument, error) {
	start := time.Now()
	document, err := d.next.Generate(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "document", "document_generate", status)
	d.metrics.RecordDuration(ctx, "document", "document_generate", time.Since(start), status)

	return document, err
}

// Load records metrics for document lookup operations.
func (d *documentUseCaseWithMetrics) Load(
	ctx context.Context,
	documentID string,
) (*docDomain.GeneratedDocument, error) {
	start := time.Now()
	document, err := d.next.Load(ctx, documentID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "document", "document_load", status)
	d.metrics.RecordDuration(ctx, "document", "document_load", time.Since(start), status)

	return document, err
}
