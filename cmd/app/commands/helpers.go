// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/allisson/docgen/internal/app"
	docDomain "github.com/allisson/docgen/internal/document/domain"
)

// shutdownTimeout bounds graceful shutdown of servers and stores.
const shutdownTimeout = 30 * time.Second

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// outputDocument writes a generated document record in the requested format.
func outputDocument(out io.Writer, document *docDomain.GeneratedDocument, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(document)
	}

	fmt.Fprintf(out, "Document ID:  %s\n", document.DocumentID)
	fmt.Fprintf(out, "Document URL: %s\n", document.DocumentURL)
	fmt.Fprintf(out, "PDF Key:      %s\n", document.PdfKey)
	return nil
}

// parseVariables decodes the --variables JSON object. An empty string means
// no variables.
func parseVariables(variablesJSON string) (map[string]any, error) {
	if variablesJSON == "" {
		return nil, nil
	}

	var variables map[string]any
	if err := json.Unmarshal([]byte(variablesJSON), &variables); err != nil {
		return nil, fmt.Errorf("invalid variables JSON: %w", err)
	}
	return variables, nil
}
