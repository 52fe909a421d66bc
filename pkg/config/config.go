package config

import (
	"fmt"
	"os"
	"regexp"
	"staybook/pkg/client"
	"staybook/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	JWTSecret       string
	SessionTokenTTL time.Duration
	BcryptCost      int
	CORSOrigin      string
	CookieSecure    bool

	MediaBackend      string
	UploadDir         string
	MaxUploadFiles    int
	MaxUploadSize     int64
	MediaFetchTimeout time.Duration
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PresignExpiry   time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the process configuration once at startup. A .env file in the
// working directory is honoured when present; real environment variables win.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecret:       getEnvStr(EnvJWTSecret, DefaultJWTSecret),
		SessionTokenTTL: getEnvDuration(EnvSessionTokenTTL, DefaultSessionTokenTTL),
		BcryptCost:      getEnvNum(EnvBcryptCost, DefaultBcryptCost),
		CORSOrigin:      getEnvStr(EnvCORSOrigin, DefaultCORSOrigin),
		CookieSecure:    getEnvBool(EnvCookieSecure, false),

		MediaBackend:      strings.ToLower(getEnvStr(EnvMediaBackend, DefaultMediaBackend)),
		UploadDir:         getEnvStr(EnvUploadDir, DefaultUploadDir),
		MaxUploadFiles:    getEnvNum(EnvMaxUploadFiles, DefaultMaxUploadFiles),
		MaxUploadSize:     int64(getEnvNum(EnvMaxUploadSize, DefaultMaxUploadSize)),
		MediaFetchTimeout: getEnvDuration(EnvMediaFetchTimeout, DefaultMediaFetchTimeout),
		S3Bucket:          getEnvStr(EnvS3Bucket, ""),
		S3Region:          getEnvStr(EnvS3Region, DefaultS3Region),
		S3Endpoint:        getEnvStr(EnvS3Endpoint, ""),
		S3AccessKeyID:     getEnvStr(EnvS3AccessKeyID, ""),
		S3SecretAccessKey: getEnvStr(EnvS3SecretAccessKey, ""),
		S3PresignExpiry:   getEnvDuration(EnvS3PresignExpiry, DefaultS3PresignExpiry),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	if cfg.JWTSecret == DefaultJWTSecret {
		cfg.Log.Warn("JWT_SECRET is not set, using the development secret")
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// KafkaEnabled reports whether domain events should be published.
func (cfg *Config) KafkaEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWTSecret cannot be empty")
	}
	if cfg.SessionTokenTTL < 0 {
		errors = append(errors, fmt.Sprintf("SessionTokenTTL cannot be negative, got: %s", cfg.SessionTokenTTL))
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("BcryptCost must be between 4 and 31, got: %d", cfg.BcryptCost))
	}
	if cfg.CORSOrigin == "" {
		errors = append(errors, "CORSOrigin cannot be empty")
	}

	switch cfg.MediaBackend {
	case MediaBackendDisk:
		if cfg.UploadDir == "" {
			errors = append(errors, "UploadDir cannot be empty for the disk media backend")
		}
	case MediaBackendS3:
		if cfg.S3Bucket == "" {
			errors = append(errors, "S3Bucket cannot be empty for the s3 media backend")
		}
		if (cfg.S3AccessKeyID == "") != (cfg.S3SecretAccessKey == "") {
			errors = append(errors, "S3AccessKeyID and S3SecretAccessKey must be set together")
		}
		if cfg.S3PresignExpiry <= 0 {
			errors = append(errors, fmt.Sprintf("S3PresignExpiry must be positive, got: %s", cfg.S3PresignExpiry))
		}
	default:
		errors = append(errors, fmt.Sprintf("MediaBackend must be one of %q or %q, got: %s", MediaBackendDisk, MediaBackendS3, cfg.MediaBackend))
	}
	if cfg.MaxUploadFiles <= 0 {
		errors = append(errors, fmt.Sprintf("MaxUploadFiles must be positive, got: %d", cfg.MaxUploadFiles))
	}
	if cfg.MaxUploadSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxUploadSize must be positive, got: %d", cfg.MaxUploadSize))
	}
	if cfg.MediaFetchTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MediaFetchTimeout must be positive, got: %s", cfg.MediaFetchTimeout))
	}

	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		errors = append(errors, "KafkaTopic cannot be empty when KafkaBrokers are set")
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.MediaFetchTimeout > 0 && cfg.RequestTimeout > 0 && cfg.MediaFetchTimeout >= cfg.RequestTimeout {
		errors = append(errors, fmt.Sprintf("MediaFetchTimeout (%s) must be shorter than RequestTimeout (%s)", cfg.MediaFetchTimeout, cfg.RequestTimeout))
	}
	if cfg.RequestTimeout > 0 && cfg.WriteTimeout > 0 && cfg.RequestTimeout >= cfg.WriteTimeout {
		errors = append(errors, fmt.Sprintf("RequestTimeout (%s) must be shorter than WriteTimeout (%s)", cfg.RequestTimeout, cfg.WriteTimeout))
	}
	if cfg.RequestTimeout > 0 && cfg.ReadTimeout > 0 && cfg.RequestTimeout >= cfg.ReadTimeout {
		errors = append(errors, fmt.Sprintf("RequestTimeout (%s) must be shorter than ReadTimeout (%s)", cfg.RequestTimeout, cfg.ReadTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"jwt_secret_set", cfg.JWTSecret != DefaultJWTSecret,
		"session_token_ttl", cfg.SessionTokenTTL,
		"bcrypt_cost", cfg.BcryptCost,
		"cors_origin", cfg.CORSOrigin,
		"cookie_secure", cfg.CookieSecure,
		"media_backend", cfg.MediaBackend,
		"upload_dir", cfg.UploadDir,
		"max_upload_files", cfg.MaxUploadFiles,
		"max_upload_size", cfg.MaxUploadSize,
		"media_fetch_timeout", cfg.MediaFetchTimeout,
		"s3_bucket", cfg.S3Bucket,
		"s3_endpoint", cfg.S3Endpoint,
		"s3_static_credentials", cfg.S3AccessKeyID != "",
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}
