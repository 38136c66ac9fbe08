// Package domain defines the core domain models for document generation.
// A generated document is immutable once stored: there is no update or delete
// path, and a repeated generation for the same document id overwrites the
// record (last-write-wins) while storing a fresh artifact.
package domain

// ArtifactPrefix is the fixed key prefix for stored PDF artifacts.
const ArtifactPrefix = "generated/"

// ArtifactContentType is the content type attached to stored artifacts.
const ArtifactContentType = "application/pdf"

// DocumentIDMetadataKey is the blob metadata key carrying the caller's
// document id on a stored artifact.
const DocumentIDMetadataKey = "document-id"

// GenerationInput carries the rendering inputs for one generation request.
type GenerationInput struct {
	// HTMLTemplateName is the blob key of the HTML template.
	HTMLTemplateName string
	// CSSTemplateName is the blob key of the CSS stylesheet.
	CSSTemplateName string
	// DocumentID is the caller-supplied correlation key for the record.
	DocumentID string
	// Variables is the placeholder mapping passed opaquely to the renderer.
	Variables map[string]any
}

// GeneratedDocument is the persisted record of a successful generation.
type GeneratedDocument struct {
	// DocumentID is the caller-supplied identifier and the repository key.
	DocumentID string `docstore:"document_id" json:"document_id"`
	// PdfKey is the server-generated storage key, form "generated/{uuid}.pdf".
	PdfKey string `docstore:"pdf_key" json:"pdf_key"`
	// DocumentURL is the derived public URL of the stored artifact.
	DocumentURL string `docstore:"document_url" json:"document_url"`
	// Variables holds the serialized rendering input, stored for auditability.
	Variables string `docstore:"variables" json:"variables"`
}
