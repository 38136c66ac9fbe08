// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// BucketName identifies the blob store holding templates and generated
	// artifacts. A bare name is treated as an S3 bucket; a full gocloud URL
	// (s3://, file://, mem://) is used as-is.
	BucketName string
	// TableName identifies the key-value repository for generated document
	// records. A bare name is treated as a DynamoDB table; a full gocloud URL
	// (dynamodb://, mem://) is used as-is.
	TableName string
	// AWSRegion is the region appended to S3/DynamoDB URLs built from bare names.
	AWSRegion string
	// DocumentBaseURL is the public base URL under which stored artifacts are
	// reachable. Empty derives https://<bucket>.s3.amazonaws.com.
	DocumentBaseURL string

	// JWTAuthorityDomain is the host publishing the signing key set used to
	// verify bearer credentials.
	JWTAuthorityDomain string
	// JWTAudience is the audience claim expected in verified tokens.
	JWTAudience string
	// JWKSCacheTTL is how long a fetched signing key is served from cache
	// before the key set is refetched.
	JWKSCacheTTL time.Duration

	// RenderTimeout bounds a single PDF conversion.
	RenderTimeout time.Duration

	// CORSEnabled indicates whether cross-origin requests are allowed.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins. The
	// value "*" allows any origin.
	CORSAllowOrigins string

	// RateLimitEnabled indicates whether per-client rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Storage
		BucketName:      env.GetString("BUCKET_NAME", ""),
		TableName:       env.GetString("TABLE_NAME", ""),
		AWSRegion:       env.GetString("AWS_REGION", "us-east-1"),
		DocumentBaseURL: env.GetString("DOCUMENT_BASE_URL", ""),

		// Token verification
		JWTAuthorityDomain: env.GetString("JWT_AUTHORITY_DOMAIN", ""),
		JWTAudience:        env.GetString("JWT_AUDIENCE", ""),
		JWKSCacheTTL:       env.GetDuration("JWKS_CACHE_TTL_SECONDS", 300, time.Second),

		// Rendering
		RenderTimeout: env.GetDuration("RENDER_TIMEOUT_SECONDS", 120, time.Second),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", true),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", "*"),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", false),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "docgen"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
