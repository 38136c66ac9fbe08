package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/cbroglie/mustache"

	apperrors "github.com/allisson/docgen/internal/errors"
)

// wkhtmlRenderer implements Renderer with a logic-less mustache merge followed
// by wkhtmltopdf conversion. Unresolved placeholders render empty, which is a
// policy choice of the templating engine, not a failure.
type wkhtmlRenderer struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewWkhtmlRenderer creates the PDF renderer. timeout bounds a single
// conversion; zero means no bound beyond the caller's context.
func NewWkhtmlRenderer(timeout time.Duration, logger *slog.Logger) Renderer {
	return &wkhtmlRenderer{timeout: timeout, logger: logger}
}

// Render merges variables into the HTML template, injects the stylesheet and
// converts the result into PDF bytes.
func (r *wkhtmlRenderer) Render(
	ctx context.Context,
	htmlTemplate, cssTemplate string,
	variables map[string]any,
) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	merged, err := mergeTemplate(htmlTemplate, variables)
	if err != nil {
		return nil, err
	}

	document := injectStylesheet(merged, cssTemplate)

	generator, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("%w: layout engine unavailable: %v", apperrors.ErrRender, err)
	}

	page := wkhtmltopdf.NewPageReader(strings.NewReader(document))
	generator.AddPage(page)

	r.logger.Info("generating pdf", slog.Int("document_bytes", len(document)))

	// Conversion runs to completion once started; there is no mid-render
	// cancellation signal to consume.
	if err := generator.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: pdf conversion failed: %v", apperrors.ErrRender, err)
	}

	return generator.Bytes(), nil
}

// mergeTemplate resolves placeholders by name; names missing from variables
// render empty.
func mergeTemplate(htmlTemplate string, variables map[string]any) (string, error) {
	merged, err := mustache.Render(htmlTemplate, variables)
	if err != nil {
		return "", fmt.Errorf("%w: template merge failed: %v", apperrors.ErrRender, err)
	}
	return merged, nil
}

// injectStylesheet places the stylesheet into the document head so the layout
// engine applies it without a separate stylesheet file.
func injectStylesheet(html, css string) string {
	if strings.TrimSpace(css) == "" {
		return html
	}

	style := "<style>" + css + "</style>"

	if idx := strings.Index(strings.ToLower(html), "</head>"); idx >= 0 {
		return html[:idx] + style + html[idx:]
	}

	return style + html
}
