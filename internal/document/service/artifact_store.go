package service

import (
	"context"
	"fmt"

	"gocloud.dev/blob"

	docDomain "github.com/allisson/docgen/internal/document/domain"
	apperrors "github.com/allisson/docgen/internal/errors"
)

// blobArtifactStore implements ArtifactStore over a gocloud blob bucket.
type blobArtifactStore struct {
	bucket *blob.Bucket
}

// NewBlobArtifactStore creates an artifact store writing to the given bucket.
func NewBlobArtifactStore(bucket *blob.Bucket) ArtifactStore {
	return &blobArtifactStore{bucket: bucket}
}

// Store writes the PDF at key with content type application/pdf and the
// caller's document id as metadata.
func (s *blobArtifactStore) Store(ctx context.Context, key string, pdf []byte, documentID string) error {
	opts := &blob.WriterOptions{
		ContentType: docDomain.ArtifactContentType,
		Metadata: map[string]string{
			docDomain.DocumentIDMetadataKey: documentID,
		},
	}

	if err := s.bucket.WriteAll(ctx, key, pdf, opts); err != nil {
		return fmt.Errorf("%w: upload of %q failed: %v", apperrors.ErrPersistence, key, err)
	}

	return nil
}

// Delete removes a stored artifact.
func (s *blobArtifactStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: delete of %q failed: %v", apperrors.ErrPersistence, key, err)
	}
	return nil
}
