package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"resume-ats/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	DatabaseURL       string
	CORSAllowOrigin   []string
	TrustedProxies    []string
	ObjectStoreType   string
	LocalStoreDir     string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	SSEKMSKeyID       string
	QueueBackend      string
	SQSQueueURL       string
	AMQPURL           string
	AMQPQueue         string
	WorkerConcurrency int
	RateLimitRPS      float64
	RateLimitBurst    int
	ScoringWeights    string
	MaxUploadBytes    int64
}

// Load reads configuration from environment variables with sensible defaults.
// Values already present in the environment win over .env files.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		DatabaseURL:       dbURL,
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		TrustedProxies:    splitAndTrim(os.Getenv("TRUSTED_PROXIES")),
		ObjectStoreType:   normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:     getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		QueueBackend:      normalizeQueueBackend(getEnv("QUEUE_BACKEND", "none")),
		SQSQueueURL:       getEnv("SQS_QUEUE_URL", ""),
		AMQPURL:           getEnv("AMQP_URL", ""),
		AMQPQueue:         getEnv("AMQP_QUEUE", "resume-analyses"),
		WorkerConcurrency: getInt("WORKER_CONCURRENCY", 4),
		RateLimitRPS:      getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getInt("RATE_LIMIT_BURST", 10),
		ScoringWeights:    getEnv("SCORING_WEIGHTS", "canonical"),
		MaxUploadBytes:    int64(getInt("MAX_UPLOAD_BYTES", 10<<20)),
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	var errs []error
	if c.ObjectStoreType == "s3" && c.S3Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET is required when OBJECT_STORE=s3"))
	}
	switch c.QueueBackend {
	case "sqs":
		if c.SQSQueueURL == "" {
			errs = append(errs, errors.New("SQS_QUEUE_URL is required when QUEUE_BACKEND=sqs"))
		}
	case "amqp":
		if c.AMQPURL == "" {
			errs = append(errs, errors.New("AMQP_URL is required when QUEUE_BACKEND=amqp"))
		}
	}
	if c.WorkerConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("WORKER_CONCURRENCY must be positive, got %d", c.WorkerConcurrency))
	}
	return errors.Join(errs...)
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			telemetry.Warn("config.env_file_invalid", map[string]any{"path": path, "error": err.Error()})
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeQueueBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sqs":
		return "sqs"
	case "amqp", "rabbitmq":
		return "amqp"
	default:
		return "none"
	}
}
