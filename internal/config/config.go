package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/engimate/backend/internal/domain"
)

// Config structure represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	Predictor PredictorConfig `yaml:"predictor"`
	Auth      AuthConfig      `yaml:"auth"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Port         string `yaml:"port" env:"SERVER_PORT"`
	Mode         string `yaml:"mode" env:"SERVER_MODE"`
	ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig holds the cutoff store connection settings
type DatabaseConfig struct {
	Host            string `yaml:"host" env:"DB_HOST"`
	Port            string `yaml:"port" env:"DB_PORT"`
	User            string `yaml:"user" env:"DB_USER"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	QueryTimeout    string `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT"`
	// RunMigrations applies migrations/ at startup. Development only: the cutoff
	// tables are owned by the data pipeline in production.
	RunMigrations bool `yaml:"run_migrations" env:"DB_RUN_MIGRATIONS"`
	// SeedSampleData inserts a small sample catalogue after migrations
	SeedSampleData bool `yaml:"seed_sample_data" env:"DB_SEED_SAMPLE_DATA"`
}

// LoggingConfig selects log level and format (json or text)
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// PredictorConfig tunes list sizes, search ceilings and store retries
type PredictorConfig struct {
	UpperCap            int    `yaml:"upper_cap" env:"PREDICTOR_UPPER_CAP"`
	LowerCap            int    `yaml:"lower_cap" env:"PREDICTOR_LOWER_CAP"`
	TotalCap            int    `yaml:"total_cap" env:"PREDICTOR_TOTAL_CAP"`
	SafetyNet           int    `yaml:"safety_net" env:"PREDICTOR_SAFETY_NET"`
	StateRankCeiling    int64  `yaml:"state_rank_ceiling" env:"PREDICTOR_STATE_RANK_CEILING"`
	AllIndiaRankCeiling int64  `yaml:"all_india_rank_ceiling" env:"PREDICTOR_ALL_INDIA_RANK_CEILING"`
	RetryAttempts       uint   `yaml:"retry_attempts" env:"PREDICTOR_RETRY_ATTEMPTS"`
	RetryBackoff        string `yaml:"retry_backoff" env:"PREDICTOR_RETRY_BACKOFF"`
	DefaultYear         int    `yaml:"default_year" env:"PREDICTOR_DEFAULT_YEAR"`
	Scoring             string `yaml:"scoring" env:"PREDICTOR_SCORING"`
}

// AuthConfig configures the optional verified-identity gate
type AuthConfig struct {
	Enabled bool   `yaml:"enabled" env:"AUTH_ENABLED"`
	Secret  string `yaml:"secret" env:"AUTH_SECRET"`
	Issuer  string `yaml:"issuer" env:"AUTH_ISSUER"`
}

var scoringStrategies = map[string]bool{"proximity": true, "prestige": true}

// LoadConfig loads configuration from a file, a .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// The file is optional
	if file, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "30s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "engimate"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.MinConns = 2
	config.Database.ConnMaxLifetime = "1h"
	config.Database.QueryTimeout = "15s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Predictor.UpperCap = 60
	config.Predictor.LowerCap = 90
	config.Predictor.TotalCap = 150
	config.Predictor.SafetyNet = 10
	config.Predictor.StateRankCeiling = 250000
	config.Predictor.AllIndiaRankCeiling = 300000
	config.Predictor.RetryAttempts = 3
	config.Predictor.RetryBackoff = "2s"
	config.Predictor.DefaultYear = domain.Year2025
	config.Predictor.Scoring = "proximity"
}

// Validate ensures that the configuration is usable
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database max_conns must be positive")
	}

	durations := map[string]string{
		"server.read_timeout":        c.Server.ReadTimeout,
		"server.write_timeout":       c.Server.WriteTimeout,
		"database.conn_max_lifetime": c.Database.ConnMaxLifetime,
		"database.query_timeout":     c.Database.QueryTimeout,
		"predictor.retry_backoff":    c.Predictor.RetryBackoff,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	p := c.Predictor
	if p.UpperCap <= 0 || p.LowerCap <= 0 || p.TotalCap <= 0 || p.SafetyNet <= 0 {
		return fmt.Errorf("predictor caps must be positive")
	}
	if p.StateRankCeiling <= 0 || p.AllIndiaRankCeiling <= 0 {
		return fmt.Errorf("predictor rank ceilings must be positive")
	}
	if p.RetryAttempts == 0 {
		return fmt.Errorf("predictor retry_attempts must be positive")
	}
	if !domain.SupportedYear(p.DefaultYear) {
		return fmt.Errorf("predictor default_year %d is not supported", p.DefaultYear)
	}
	if !scoringStrategies[strings.ToLower(p.Scoring)] {
		return fmt.Errorf("unknown predictor scoring %q", p.Scoring)
	}

	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required when auth is enabled")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
