package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort         string
	AllowedOrigins     []string
	RateLimitPerMinute int

	// Logging
	LogLevel  string
	LogPretty bool

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// AWS S3 (or MinIO when AWSEndpoint is set)
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3UseSSL           string
	S3BlogBucket       string
	S3LegalBlogBucket  string

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string

	// List management
	ListPageSize            int
	SelectionTTL            time.Duration
	DraftAutosaveInterval   time.Duration
	DraftTTL                time.Duration
	MediaCleanupConcurrency int
	MediaCleanupMaxAttempts int
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		AllowedOrigins:     []string{getEnv("DASHBOARD_ORIGIN", "http://localhost:3000"), "http://127.0.0.1:3000"},
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", true),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "asme"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTTTL:    getEnvDuration("JWT_TTL", 12*time.Hour),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),
		S3BlogBucket:       getEnv("S3_BLOG_BUCKET", "blog-media"),
		S3LegalBlogBucket:  getEnv("S3_LEGAL_BLOG_BUCKET", "legal-blog-media"),

		RabbitMQHost:     getEnv("RABBITMQ_HOST", "localhost"),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),

		ListPageSize:            getEnvInt("LIST_PAGE_SIZE", 10),
		SelectionTTL:            getEnvDuration("SELECTION_TTL", 2*time.Hour),
		DraftAutosaveInterval:   getEnvDuration("DRAFT_AUTOSAVE_INTERVAL", 30*time.Second),
		DraftTTL:                getEnvDuration("DRAFT_TTL", 7*24*time.Hour),
		MediaCleanupConcurrency: getEnvInt("MEDIA_CLEANUP_CONCURRENCY", 1),
		MediaCleanupMaxAttempts: getEnvInt("MEDIA_CLEANUP_MAX_ATTEMPTS", 5),
	}

	if config.ListPageSize <= 0 {
		config.ListPageSize = 10
	}
	if config.MediaCleanupConcurrency <= 0 {
		config.MediaCleanupConcurrency = 1
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
