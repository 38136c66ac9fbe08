// Package service provides the external collaborators of the generation
// pipeline: template retrieval, artifact storage and PDF rendering.
package service

import "context"

// TemplateStore fetches immutable named template blobs, read-only.
type TemplateStore interface {
	// Fetch returns the template's UTF-8 text.
	// A missing or unreadable template is an upstream error.
	Fetch(ctx context.Context, name string) (string, error)
}

// ArtifactStore persists generated PDF artifacts.
type ArtifactStore interface {
	// Store writes the PDF bytes at key with the document id attached as
	// metadata.
	Store(ctx context.Context, key string, pdf []byte, documentID string) error

	// Delete removes a stored artifact. Used only to compensate a failed
	// repository write.
	Delete(ctx context.Context, key string) error
}

// Renderer merges a template with a variable mapping and converts the result
// plus a stylesheet into a PDF byte stream.
type Renderer interface {
	// Render is CPU-bound and runs as a bounded, non-interruptible unit of
	// work; the context only bounds the work wkhtmltopdf has not started.
	Render(ctx context.Context, htmlTemplate, cssTemplate string, variables map[string]any) ([]byte, error)
}
