package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend identifiers.
const (
	BackendLocal = "local"
	BackendMongo = "mongo"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Google    GoogleConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig selects and parameterizes the persistence backend.
type StorageConfig struct {
	Backend string
	DataDir string
}

// MongoDBConfig holds settings for the MongoDB backend.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// GoogleConfig contains credentials for the Drive archive and the OAuth
// token verification used by the API guard. Both integrations are optional:
// with no credentials the archive is disabled, with no client ID the guard
// admits all requests.
type GoogleConfig struct {
	CredentialsPath string
	DriveFolderName string
	OAuthClientID   string
	AuthBaseURL     string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			Backend: getenvWithDefault("STORAGE_BACKEND", BackendLocal),
			DataDir: getenvWithDefault("DATA_DIR", "./data"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "finreport"),
		},
		Google: GoogleConfig{
			CredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
			DriveFolderName: getenvWithDefault("DRIVE_FOLDER_NAME", "Financial Projects"),
			OAuthClientID:   os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
			AuthBaseURL:     getenvWithDefault("GOOGLE_AUTH_BASE_URL", "https://oauth2.googleapis.com"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Backend {
	case BackendLocal:
		if c.Storage.DataDir == "" {
			return errors.New("DATA_DIR must be provided for the local backend")
		}
	case BackendMongo:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided for the mongo backend")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided for the mongo backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendLocal, BackendMongo, c.Storage.Backend)
	}

	if c.Google.DriveFolderName == "" {
		return errors.New("DRIVE_FOLDER_NAME must not be empty")
	}

	if c.Google.AuthBaseURL == "" {
		return errors.New("GOOGLE_AUTH_BASE_URL must not be empty")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
