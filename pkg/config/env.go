package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret       = "JWT_SECRET"
	EnvSessionTokenTTL = "SESSION_TOKEN_TTL"
	EnvBcryptCost      = "BCRYPT_COST"
	EnvCORSOrigin      = "CORS_ORIGIN"
	EnvCookieSecure    = "COOKIE_SECURE"

	EnvMediaBackend      = "MEDIA_BACKEND"
	EnvUploadDir         = "UPLOAD_DIR"
	EnvMaxUploadFiles    = "MAX_UPLOAD_FILES"
	EnvMaxUploadSize     = "MAX_UPLOAD_SIZE"
	EnvMediaFetchTimeout = "MEDIA_FETCH_TIMEOUT"
	EnvS3Bucket          = "S3_BUCKET"
	EnvS3Region          = "S3_REGION"
	EnvS3Endpoint        = "S3_ENDPOINT"
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3_SECRET_ACCESS_KEY"
	EnvS3PresignExpiry   = "S3_PRESIGN_EXPIRY"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
