package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	docDomain "github.com/allisson/docgen/internal/document/domain"
	docUsecase "github.com/allisson/docgen/internal/document/usecase"
)

// RunGenerate runs the generation pipeline once from the command line.
// Useful for smoke-testing templates without going through the API.
func RunGenerate(
	ctx context.Context,
	documentUseCase docUsecase.DocumentUseCase,
	logger *slog.Logger,
	out io.Writer,
	htmlTemplateName, cssTemplateName, documentID, variablesJSON, format string,
) error {
	variables, err := parseVariables(variablesJSON)
	if err != nil {
		return err
	}

	logger.Info("generating document",
		slog.String("document_id", documentID),
		slog.String("html_template", htmlTemplateName),
		slog.String("css_template", cssTemplateName),
	)

	document, err := documentUseCase.Generate(ctx, &docDomain.GenerationInput{
		HTMLTemplateName: htmlTemplateName,
		CSSTemplateName:  cssTemplateName,
		DocumentID:       documentID,
		Variables:        variables,
	})
	if err != nil {
		return fmt.Errorf("failed to generate document: %w", err)
	}

	return outputDocument(out, document, format)
}
