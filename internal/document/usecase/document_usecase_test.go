package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/docstore/memdocstore"

	docDomain "github.com/allisson/docgen/internal/document/domain"
	"github.com/allisson/docgen/internal/document/repository"
	docService "github.com/allisson/docgen/internal/document/service"
	"github.com/allisson/docgen/internal/document/usecase"
	apperrors "github.com/allisson/docgen/internal/errors"
)

// TestMain verifies no goroutines leak from the pipeline, in particular from
// the concurrent template fetches.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testBaseURL = "https://og-document-generator-bucket.s3.amazonaws.com"

var pdfKeyPattern = regexp.MustCompile(`^generated/[0-9a-f-]+\.pdf$`)

// stubRenderer fabricates a PDF from the merged inputs without a layout engine.
type stubRenderer struct {
	err   error
	calls int
}

func (s *stubRenderer) Render(
	ctx context.Context,
	htmlTemplate, cssTemplate string,
	variables map[string]any,
) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.7 " + htmlTemplate), nil
}

// countingTemplateStore records fetches before delegating. Fetches run
// concurrently, so the counter is atomic.
type countingTemplateStore struct {
	next  docService.TemplateStore
	calls atomic.Int32
}

func (c *countingTemplateStore) Fetch(ctx context.Context, name string) (string, error) {
	c.calls.Add(1)
	return c.next.Fetch(ctx, name)
}

// failingRepository rejects every write.
type failingRepository struct{}

func (f *failingRepository) Upsert(ctx context.Context, document *docDomain.GeneratedDocument) error {
	return fmt.Errorf("%w: table unavailable", apperrors.ErrPersistence)
}

func (f *failingRepository) Get(ctx context.Context, documentID string) (*docDomain.GeneratedDocument, error) {
	return nil, fmt.Errorf("%w: table unavailable", apperrors.ErrPersistence)
}

// pipelineFixture wires the use case against in-memory collaborators.
type pipelineFixture struct {
	useCase   usecase.DocumentUseCase
	bucket    *blob.Bucket
	templates *countingTemplateStore
	renderer  *stubRenderer
}

func newPipelineFixture(t *testing.T, repo usecase.DocumentRepository) *pipelineFixture {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	if repo == nil {
		collection, err := memdocstore.OpenCollection("document_id", nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = collection.Close() })
		repo = repository.NewDocstoreDocumentRepository(collection)
	}

	templates := &countingTemplateStore{next: docService.NewBlobTemplateStore(bucket)}
	renderer := &stubRenderer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &pipelineFixture{
		useCase: usecase.NewDocumentUseCase(
			templates,
			renderer,
			docService.NewBlobArtifactStore(bucket),
			repo,
			testBaseURL,
			logger,
		),
		bucket:    bucket,
		templates: templates,
		renderer:  renderer,
	}
}

func (f *pipelineFixture) writeTemplates(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, f.bucket.WriteAll(ctx, "hello.html", []byte("Hello {{name}}"), nil))
	require.NoError(t, f.bucket.WriteAll(ctx, "hello.css", []byte(""), nil))
}

func helloInput(documentID string) *docDomain.GenerationInput {
	return &docDomain.GenerationInput{
		HTMLTemplateName: "hello.html",
		CSSTemplateName:  "hello.css",
		DocumentID:       documentID,
		Variables:        map[string]any{"name": "World"},
	}
}

func TestDocumentUseCase_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil)
		fixture.writeTemplates(t)

		document, err := fixture.useCase.Generate(ctx, helloInput("invoice-42"))
		require.NoError(t, err)

		assert.Equal(t, "invoice-42", document.DocumentID)
		assert.Regexp(t, pdfKeyPattern, document.PdfKey)
		assert.Equal(t, testBaseURL+"/"+document.PdfKey, document.DocumentURL)
		assert.JSONEq(t, `{"name":"World"}`, document.Variables)

		// The artifact is a non-empty blob under the generated/ prefix.
		pdf, err := fixture.bucket.ReadAll(ctx, document.PdfKey)
		require.NoError(t, err)
		assert.NotEmpty(t, pdf)

		// The record is retrievable and matches what generate returned.
		loaded, err := fixture.useCase.Load(ctx, "invoice-42")
		require.NoError(t, err)
		assert.Equal(t, document.DocumentURL, loaded.DocumentURL)
	})

	t.Run("MissingTemplateNameFailsBeforeAnyExternalCall", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil)
		fixture.writeTemplates(t)

		input := helloInput("invoice-42")
		input.CSSTemplateName = ""

		_, err := fixture.useCase.Generate(ctx, input)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Zero(t, fixture.templates.calls.Load())
		assert.Zero(t, fixture.renderer.calls)
	})

	t.Run("MissingTemplateBlobAbortsPipeline", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil)
		// No templates written.

		_, err := fixture.useCase.Generate(ctx, helloInput("invoice-42"))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
		assert.Zero(t, fixture.renderer.calls)
	})

	t.Run("RenderFailureAbortsBeforeUpload", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil)
		fixture.writeTemplates(t)
		fixture.renderer.err = fmt.Errorf("%w: unsupported css", apperrors.ErrRender)

		_, err := fixture.useCase.Generate(ctx, helloInput("invoice-42"))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrRender)

		// Nothing was uploaded.
		iter := fixture.bucket.List(&blob.ListOptions{Prefix: docDomain.ArtifactPrefix})
		_, listErr := iter.Next(ctx)
		assert.ErrorIs(t, listErr, io.EOF)
	})

	t.Run("FailedRecordWriteCompensatesUpload", func(t *testing.T) {
		fixture := newPipelineFixture(t, &failingRepository{})
		fixture.writeTemplates(t)

		_, err := fixture.useCase.Generate(ctx, helloInput("invoice-42"))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPersistence)

		// The uploaded artifact was deleted.
		iter := fixture.bucket.List(&blob.ListOptions{Prefix: docDomain.ArtifactPrefix})
		_, listErr := iter.Next(ctx)
		assert.ErrorIs(t, listErr, io.EOF)
	})

	t.Run("RepeatedDocumentIDIsLastWriteWins", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil)
		fixture.writeTemplates(t)

		first, err := fixture.useCase.Generate(ctx, helloInput("invoice-42"))
		require.NoError(t, err)
		second, err := fixture.useCase.Generate(ctx, helloInput("invoice-42"))
		require.NoError(t, err)

		// Two distinct artifacts exist.
		assert.NotEqual(t, first.PdfKey, second.PdfKey)
		for _, key := range []string{first.PdfKey, second.PdfKey} {
			exists, existsErr := fixture.bucket.Exists(ctx, key)
			require.NoError(t, existsErr)
			assert.True(t, exists, key)
		}

		// Exactly one record remains, reflecting the most recent call.
		loaded, err := fixture.useCase.Load(ctx, "invoice-42")
		require.NoError(t, err)
		assert.Equal(t, second.PdfKey, loaded.PdfKey)
		assert.Equal(t, second.DocumentURL, loaded.DocumentURL)
	})
}

func TestDocumentUseCase_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingDocumentIDIsValidationFailure", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil)

		_, err := fixture.useCase.Load(ctx, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("UnknownDocumentIDIsNotFound", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil)

		_, err := fixture.useCase.Load(ctx, "never-generated")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("ReturnsSameURLAsGenerate", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil)
		fixture.writeTemplates(t)

		generated, err := fixture.useCase.Generate(ctx, helloInput("invoice-42"))
		require.NoError(t, err)

		loaded, err := fixture.useCase.Load(ctx, "invoice-42")
		require.NoError(t, err)
		assert.Equal(t, generated.DocumentURL, loaded.DocumentURL)
		assert.True(t, strings.Contains(loaded.DocumentURL, loaded.PdfKey))
	})
}
