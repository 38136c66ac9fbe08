package dto

import (
	docDomain "github.com/allisson/docgen/internal/document/domain"
)

// DocumentResponse represents a generated document in API responses.
// The pdf key stays internal; clients only see the public URL.
type DocumentResponse struct {
	DocumentID  string `json:"document_id"`
	DocumentURL string `json:"document_url"`
}

// MapDocumentToResponse converts a domain document to its API representation.
func MapDocumentToResponse(document *docDomain.GeneratedDocument) DocumentResponse {
	return DocumentResponse{
		DocumentID:  document.DocumentID,
		DocumentURL: document.DocumentURL,
	}
}
