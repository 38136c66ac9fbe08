// Package app provides the dependency injection container assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/docstore"
	_ "gocloud.dev/docstore/awsdynamodb/v2"
	_ "gocloud.dev/docstore/memdocstore"
	"gocloud.dev/gcerrors"

	authHTTP "github.com/allisson/docgen/internal/auth/http"
	authService "github.com/allisson/docgen/internal/auth/service"
	authUsecase "github.com/allisson/docgen/internal/auth/usecase"
	"github.com/allisson/docgen/internal/config"
	docDomain "github.com/allisson/docgen/internal/document/domain"
	docHTTP "github.com/allisson/docgen/internal/document/http"
	docRepository "github.com/allisson/docgen/internal/document/repository"
	docService "github.com/allisson/docgen/internal/document/service"
	docUsecase "github.com/allisson/docgen/internal/document/usecase"
	"github.com/allisson/docgen/internal/http"
	"github.com/allisson/docgen/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger     *slog.Logger
	bucket     *blob.Bucket
	collection *docstore.Collection

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Use Cases
	authorizerUseCase authUsecase.AuthorizerUseCase
	documentUseCase   docUsecase.DocumentUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	bucketInit            sync.Once
	collectionInit        sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	authorizerUseCaseInit sync.Once
	documentUseCaseInit   sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Bucket returns the blob bucket holding templates and generated artifacts.
func (c *Container) Bucket() (*blob.Bucket, error) {
	c.bucketInit.Do(func() {
		bucket, err := c.initBucket()
		if err != nil {
			c.initErrors["bucket"] = err
			return
		}
		c.bucket = bucket
	})
	if storedErr, exists := c.initErrors["bucket"]; exists {
		return nil, storedErr
	}
	return c.bucket, nil
}

// Collection returns the docstore collection holding generated document records.
func (c *Container) Collection() (*docstore.Collection, error) {
	c.collectionInit.Do(func() {
		collection, err := c.initCollection()
		if err != nil {
			c.initErrors["collection"] = err
			return
		}
		c.collection = collection
	})
	if storedErr, exists := c.initErrors["collection"]; exists {
		return nil, storedErr
	}
	return c.collection, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled it returns a no-op implementation.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// AuthorizerUseCase returns the request authorizer use case instance.
func (c *Container) AuthorizerUseCase() (authUsecase.AuthorizerUseCase, error) {
	c.authorizerUseCaseInit.Do(func() {
		useCase, err := c.initAuthorizerUseCase()
		if err != nil {
			c.initErrors["authorizerUseCase"] = err
			return
		}
		c.authorizerUseCase = useCase
	})
	if storedErr, exists := c.initErrors["authorizerUseCase"]; exists {
		return nil, storedErr
	}
	return c.authorizerUseCase, nil
}

// DocumentUseCase returns the document generation use case instance.
func (c *Container) DocumentUseCase() (docUsecase.DocumentUseCase, error) {
	c.documentUseCaseInit.Do(func() {
		useCase, err := c.initDocumentUseCase()
		if err != nil {
			c.initErrors["documentUseCase"] = err
			return
		}
		c.documentUseCase = useCase
	})
	if storedErr, exists := c.initErrors["documentUseCase"]; exists {
		return nil, storedErr
	}
	return c.documentUseCase, nil
}

// HTTPServer returns the API HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.bucket != nil {
		if err := c.bucket.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("bucket close: %w", err))
		}
	}

	if c.collection != nil {
		if err := c.collection.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("collection close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initBucket opens the blob bucket. A bare name is treated as an S3 bucket in
// the configured region; a full gocloud URL (s3://, file://, mem://) is used
// as-is.
func (c *Container) initBucket() (*blob.Bucket, error) {
	name := c.config.BucketName
	if name == "" {
		return nil, fmt.Errorf("BUCKET_NAME is not configured")
	}

	url := name
	if !strings.Contains(url, "://") {
		url = fmt.Sprintf("s3://%s?region=%s", name, c.config.AWSRegion)
	}

	bucket, err := blob.OpenBucket(context.Background(), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %q: %w", name, err)
	}
	return bucket, nil
}

// initCollection opens the docstore collection keyed by document_id. A bare
// name is treated as a DynamoDB table; a full gocloud URL (dynamodb://,
// mem://) is used as-is.
func (c *Container) initCollection() (*docstore.Collection, error) {
	name := c.config.TableName
	if name == "" {
		return nil, fmt.Errorf("TABLE_NAME is not configured")
	}

	url := name
	if !strings.Contains(url, "://") {
		url = fmt.Sprintf("dynamodb://%s?partition_key=document_id&region=%s", name, c.config.AWSRegion)
	}

	collection, err := docstore.OpenCollection(context.Background(), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %q: %w", name, err)
	}
	return collection, nil
}

// initAuthorizerUseCase creates the request authorizer with its verifier chain.
func (c *Container) initAuthorizerUseCase() (authUsecase.AuthorizerUseCase, error) {
	logger := c.Logger()

	// Without an authority domain there is no key set to verify against; the
	// authorizer fails closed and denies every request.
	var verifier authService.TokenVerifier
	if c.config.JWTAuthorityDomain != "" {
		keySetClient := authService.NewKeySetClient(
			authService.KeySetURL(c.config.JWTAuthorityDomain),
			c.config.JWKSCacheTTL,
			logger,
		)
		verifier = authService.NewTokenVerifier(keySetClient, c.config.JWTAudience)
	} else {
		logger.Warn("JWT_AUTHORITY_DOMAIN is not configured, token verification is disabled")
	}

	useCase := authUsecase.NewAuthorizerUseCase(verifier, logger)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for authorizer use case: %w", err)
	}

	return authUsecase.NewAuthorizerUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initDocumentUseCase creates the document use case with all its dependencies.
func (c *Container) initDocumentUseCase() (docUsecase.DocumentUseCase, error) {
	logger := c.Logger()

	bucket, err := c.Bucket()
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket for document use case: %w", err)
	}

	collection, err := c.Collection()
	if err != nil {
		return nil, fmt.Errorf("failed to get collection for document use case: %w", err)
	}

	useCase := docUsecase.NewDocumentUseCase(
		docService.NewBlobTemplateStore(bucket),
		docService.NewWkhtmlRenderer(c.config.RenderTimeout, logger),
		docService.NewBlobArtifactStore(bucket),
		docRepository.NewDocstoreDocumentRepository(collection),
		c.documentBaseURL(),
		logger,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for document use case: %w", err)
	}

	return docUsecase.NewDocumentUseCaseWithMetrics(useCase, businessMetrics), nil
}

// documentBaseURL resolves the public base URL for stored artifacts. An empty
// DOCUMENT_BASE_URL derives the conventional S3 virtual-hosted URL from the
// bucket name.
func (c *Container) documentBaseURL() string {
	if c.config.DocumentBaseURL != "" {
		return c.config.DocumentBaseURL
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com", c.config.BucketName)
}

// initHTTPServer creates the API HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	authorizerUseCase, err := c.AuthorizerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorizer use case for http server: %w", err)
	}

	documentUseCase, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for http server: %w", err)
	}

	bucket, err := c.Bucket()
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket for http server: %w", err)
	}

	collection, err := c.Collection()
	if err != nil {
		return nil, fmt.Errorf("failed to get collection for http server: %w", err)
	}

	readiness := map[string]http.ReadinessCheck{
		"bucket": func(ctx context.Context) error {
			accessible, accessErr := bucket.IsAccessible(ctx)
			if accessErr != nil {
				return accessErr
			}
			if !accessible {
				return fmt.Errorf("bucket is not accessible")
			}
			return nil
		},
		"table": func(ctx context.Context) error {
			// A point lookup of a sentinel id proves the table answers;
			// NotFound is the healthy outcome.
			probe := &docDomain.GeneratedDocument{DocumentID: "readiness-probe"}
			if getErr := collection.Get(ctx, probe); getErr != nil && gcerrors.Code(getErr) != gcerrors.NotFound {
				return getErr
			}
			return nil
		},
	}

	server := http.NewServer(
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
		authHTTP.NewAuthorizerHandler(authorizerUseCase, logger),
		docHTTP.NewDocumentHandler(documentUseCase, logger),
		authHTTP.AuthenticationMiddleware(authorizerUseCase, logger),
		readiness,
		http.Options{
			CORSEnabled:             c.config.CORSEnabled,
			CORSAllowOrigins:        c.config.CORSAllowOrigins,
			RateLimitEnabled:        c.config.RateLimitEnabled,
			RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
			RateLimitBurst:          c.config.RateLimitBurst,
		},
	)

	return server, nil
}
