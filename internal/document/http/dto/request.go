// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	docDomain "github.com/allisson/docgen/internal/document/domain"
	customValidation "github.com/allisson/docgen/internal/validation"
)

// GenerateDocumentRequest contains the parameters for one PDF generation request.
// Variables holds the values merged into the templates; unresolved placeholders
// render empty.
type GenerateDocumentRequest struct {
	HTMLTemplateName string         `json:"html_template_name"`
	CSSTemplateName  string         `json:"css_template_name"`
	DocumentID       string         `json:"document_id"`
	Variables        map[string]any `json:"variables"`
}

// Validate checks if the generate document request is valid.
func (r *GenerateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.HTMLTemplateName,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.CSSTemplateName,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.DocumentID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ToGenerationInput converts the request into the use case input.
func ToGenerationInput(r GenerateDocumentRequest) *docDomain.GenerationInput {
	return &docDomain.GenerationInput{
		HTMLTemplateName: r.HTMLTemplateName,
		CSSTemplateName:  r.CSSTemplateName,
		DocumentID:       r.DocumentID,
		Variables:        r.Variables,
	}
}
