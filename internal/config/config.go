package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Upload failure policies for the submission pipeline.
const (
	UploadPolicyBestEffort  = "best-effort"  // skip failed files, keep the submission
	UploadPolicyFailRequest = "fail-request" // any failed upload aborts the submission
)

// Config holds the application configuration. A single instance is loaded at
// startup and passed explicitly to every component constructor.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort string `envconfig:"SERVER_PORT" default:"5000"`

	// MongoDB
	MongoURI    string `envconfig:"MONGO_URI" required:"true"`
	MongoDBName string `envconfig:"MONGO_DB_NAME" default:"FLOKlore"`

	// Redis (stats cache)
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	StatsCacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"5m"`

	// Media host (S3-compatible object storage)
	MediaEndpoint      string `envconfig:"MEDIA_ENDPOINT"`
	MediaRegion        string `envconfig:"MEDIA_REGION" default:"auto"`
	MediaBucket        string `envconfig:"MEDIA_BUCKET" required:"true"`
	MediaPublicBaseURL string `envconfig:"MEDIA_PUBLIC_BASE_URL" required:"true"`
	MediaAccessKey     string `envconfig:"MEDIA_ACCESS_KEY" required:"true"`
	MediaSecretKey     string `envconfig:"MEDIA_SECRET_KEY" required:"true"`

	// Submission pipeline
	UploadDir           string `envconfig:"UPLOAD_DIR" default:"uploads"`
	UploadFailurePolicy string `envconfig:"UPLOAD_FAILURE_POLICY" default:"best-effort"`

	// AI text generation (OpenAI-compatible endpoint)
	AIBaseURL string `envconfig:"AI_BASE_URL"`
	AIAPIKey  string `envconfig:"AI_API_KEY"`
	AIModel   string `envconfig:"AI_MODEL" default:"gpt-4o-mini"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig loads configuration from the environment, optionally seeded
// from a .env file.
func LoadConfig(envFilePath string) (*Config, error) {
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	switch cfg.UploadFailurePolicy {
	case UploadPolicyBestEffort, UploadPolicyFailRequest:
	default:
		return nil, fmt.Errorf("invalid UPLOAD_FAILURE_POLICY %q (want %q or %q)",
			cfg.UploadFailurePolicy, UploadPolicyBestEffort, UploadPolicyFailRequest)
	}

	return &cfg, nil
}
