package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	docUsecase "github.com/allisson/docgen/internal/document/usecase"
)

// RunLoad looks up a generated document record from the command line.
func RunLoad(
	ctx context.Context,
	documentUseCase docUsecase.DocumentUseCase,
	logger *slog.Logger,
	out io.Writer,
	documentID, format string,
) error {
	logger.Info("loading document", slog.String("document_id", documentID))

	document, err := documentUseCase.Load(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	return outputDocument(out, document, format)
}
