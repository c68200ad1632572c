package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"bracelet-customizer/db"
)

// Preview storage backends
const (
	PreviewStorageLocal = "local"
	PreviewStorageDrive = "drive"
)

// Config holds the service configuration read from the environment
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"pgx"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"bracelet_customizer.db"`

	CatalogPath string `env:"CATALOG_PATH"`

	PreviewStorage    string `env:"PREVIEW_STORAGE" envDefault:"local"`
	PreviewDir        string `env:"PREVIEW_DIR" envDefault:"uploads/previews"`
	PreviewBaseURL    string `env:"PREVIEW_BASE_URL" envDefault:"/previews"`
	DriveFolderID     string `env:"DRIVE_FOLDER_ID"`
	GoogleCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	RetentionDays int `env:"CUSTOMIZATION_RETENTION_DAYS" envDefault:"30"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and checks the configuration
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values and cross-field requirements
func (c Config) Validate() error {
	switch c.DBDriver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverPostgres, db.DriverSQLite, c.DBDriver)
	}

	switch c.PreviewStorage {
	case PreviewStorageLocal:
	case PreviewStorageDrive:
		if c.GoogleCredentials == "" {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is required when PREVIEW_STORAGE=drive")
		}
		if c.DriveFolderID == "" {
			return fmt.Errorf("DRIVE_FOLDER_ID is required when PREVIEW_STORAGE=drive")
		}
	default:
		return fmt.Errorf("PREVIEW_STORAGE must be %q or %q, got %q", PreviewStorageLocal, PreviewStorageDrive, c.PreviewStorage)
	}

	if c.RetentionDays < 1 {
		return fmt.Errorf("CUSTOMIZATION_RETENTION_DAYS must be at least 1, got %d", c.RetentionDays)
	}
	return nil
}

// IsProduction reports whether ENV is production
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// ListenAddr returns the bind address. PORT may come with a leading colon.
func (c Config) ListenAddr() string {
	return "0.0.0.0:" + strings.TrimPrefix(c.Port, ":")
}

// DSN returns the data source name for the configured driver
func (c Config) DSN() (string, error) {
	if c.DBDriver == db.DriverSQLite {
		return c.SQLitePath, nil
	}

	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode), nil
}
