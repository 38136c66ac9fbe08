// Package usecase implements the document generation and lookup pipelines.
// Generation is fail-fast: each step's output is the next step's input, and a
// failure at any step aborts the remaining steps.
package usecase

import (
	"context"

	docDomain "github.com/allisson/docgen/internal/document/domain"
)

// DocumentRepository defines the interface for GeneratedDocument persistence.
type DocumentRepository interface {
	// Upsert writes the record keyed by its document id. An existing record
	// with the same id is overwritten (last-write-wins, no version check).
	Upsert(ctx context.Context, document *docDomain.GeneratedDocument) error

	// Get returns the record for documentID, or ErrNotFound.
	Get(ctx context.Context, documentID string) (*docDomain.GeneratedDocument, error)
}

// DocumentUseCase defines the document generation and lookup business logic.
type DocumentUseCase interface {
	// Generate runs the full pipeline: template fetch, render, artifact
	// upload, record upsert. Returns the persisted record.
	Generate(ctx context.Context, input *docDomain.GenerationInput) (*docDomain.GeneratedDocument, error)

	// Load returns the record for documentID, or ErrNotFound.
	Load(ctx context.Context, documentID string) (*docDomain.GeneratedDocument, error)
}
