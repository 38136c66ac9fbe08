// Package repository provides the docstore-backed persistence for generated
// document records.
package repository

import (
	"context"
	"fmt"

	"gocloud.dev/docstore"
	"gocloud.dev/gcerrors"

	docDomain "github.com/allisson/docgen/internal/document/domain"
	docUsecase "github.com/allisson/docgen/internal/document/usecase"
	apperrors "github.com/allisson/docgen/internal/errors"
)

// docstoreDocumentRepository implements DocumentRepository over a gocloud
// docstore collection keyed by document_id.
type docstoreDocumentRepository struct {
	collection *docstore.Collection
}

// NewDocstoreDocumentRepository creates a document repository over the given
// collection.
func NewDocstoreDocumentRepository(collection *docstore.Collection) docUsecase.DocumentRepository {
	return &docstoreDocumentRepository{collection: collection}
}

// Upsert writes the record, overwriting any prior record with the same
// document id. The record carries no revision field, so the write is
// unconditional (last-write-wins).
func (r *docstoreDocumentRepository) Upsert(ctx context.Context, document *docDomain.GeneratedDocument) error {
	if err := r.collection.Put(ctx, document); err != nil {
		return fmt.Errorf("%w: record write for %q failed: %v", apperrors.ErrPersistence, document.DocumentID, err)
	}
	return nil
}

// Get performs a point lookup by document id.
func (r *docstoreDocumentRepository) Get(
	ctx context.Context,
	documentID string,
) (*docDomain.GeneratedDocument, error) {
	document := &docDomain.GeneratedDocument{DocumentID: documentID}

	if err := r.collection.Get(ctx, document); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: document %q", apperrors.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("%w: record lookup for %q failed: %v", apperrors.ErrPersistence, documentID, err)
	}

	return document, nil
}
