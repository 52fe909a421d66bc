package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "staybook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "3000"
	DefaultLogLevel = "info"

	DefaultJWTSecret       = "dev-only-secret-change-in-prod"
	DefaultSessionTokenTTL = time.Duration(0) // 0 issues non-expiring tokens
	DefaultBcryptCost      = 10
	DefaultCORSOrigin      = "http://localhost:5173"

	MediaBackendDisk         = "disk"
	MediaBackendS3           = "s3"
	DefaultMediaBackend      = MediaBackendDisk
	DefaultUploadDir         = "uploads"
	DefaultMaxUploadFiles    = 100
	DefaultMaxUploadSize     = 64 * 1024 * 1024 // 64MB per multipart request
	DefaultMediaFetchTimeout = 20 * time.Second
	DefaultS3Region          = "us-east-1"
	DefaultS3PresignExpiry   = 15 * time.Minute

	DefaultKafkaTopic = "staybook.events"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	// Server deadlines outlast the request timeout so slow uploads and
	// fetches end in a JSON error instead of a dropped connection.
	DefaultReadTimeout     = 40 * time.Second
	DefaultWriteTimeout    = 45 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	SessionCookieName = "token"
	UploadsPathPrefix = "/uploads/"
)
