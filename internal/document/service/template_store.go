package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	apperrors "github.com/allisson/docgen/internal/errors"
)

// blobTemplateStore implements TemplateStore over a gocloud blob bucket.
type blobTemplateStore struct {
	bucket *blob.Bucket
}

// NewBlobTemplateStore creates a template store reading from the given bucket.
func NewBlobTemplateStore(bucket *blob.Bucket) TemplateStore {
	return &blobTemplateStore{bucket: bucket}
}

// Fetch reads the named template and decodes it as UTF-8 text.
func (s *blobTemplateStore) Fetch(ctx context.Context, name string) (string, error) {
	data, err := s.bucket.ReadAll(ctx, name)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return "", fmt.Errorf("%w: template %q not found", apperrors.ErrUpstream, name)
		}
		return "", fmt.Errorf("%w: download of template %q failed: %v", apperrors.ErrUpstream, name, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: template %q is not valid utf-8", apperrors.ErrUpstream, name)
	}

	return string(data), nil
}
