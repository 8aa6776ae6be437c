package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress   string        `env:"SERVER_ADDRESS" yaml:"server_address"`
	Environment     string        `env:"ENVIRONMENT" yaml:"environment"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" yaml:"read_timeout"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`

	// Storage
	StoreDriver string         `env:"STORE_DRIVER" yaml:"store_driver"`
	Database    DatabaseConfig `yaml:"database"`
	Breaker     BreakerConfig  `yaml:"breaker"`

	// AWS configuration
	AWSRegion    string `env:"AWS_REGION" yaml:"aws_region"`
	EventBusName string `env:"EVENT_BUS_NAME" yaml:"event_bus_name"`

	// Lambda configuration
	LambdaFunctionName string `env:"AWS_LAMBDA_FUNCTION_NAME" yaml:"-"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" yaml:"log_level"`

	// Feature flags
	EnableMetrics      bool     `env:"ENABLE_METRICS" yaml:"enable_metrics"`
	EnableTracing      bool     `env:"ENABLE_TRACING" yaml:"enable_tracing"`
	EnableCORS         bool     `env:"ENABLE_CORS" yaml:"enable_cors"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," yaml:"cors_allowed_origins"`
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	URL         string `env:"DATABASE_URL" yaml:"url"`
	MaxConns    int32  `env:"DB_MAX_CONNS" yaml:"max_conns"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" yaml:"auto_migrate"`
}

// BreakerConfig holds circuit breaker settings for the store
type BreakerConfig struct {
	Enabled          bool          `env:"BREAKER_ENABLED" yaml:"enabled"`
	MaxRequests      uint32        `env:"BREAKER_MAX_REQUESTS" yaml:"max_requests"`
	Interval         time.Duration `env:"BREAKER_INTERVAL" yaml:"interval"`
	Timeout          time.Duration `env:"BREAKER_TIMEOUT" yaml:"timeout"`
	FailureThreshold float64       `env:"BREAKER_FAILURE_THRESHOLD" yaml:"failure_threshold"`
	MinRequests      uint32        `env:"BREAKER_MIN_REQUESTS" yaml:"min_requests"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		ServerAddress:   ":8080",
		Environment:     "development",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		StoreDriver: StoreDriverMemory,
		Database: DatabaseConfig{
			MaxConns:    10,
			AutoMigrate: true,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          60 * time.Second,
			FailureThreshold: 0.8,
			MinRequests:      5,
		},

		AWSRegion: "us-west-2",
		LogLevel:  "info",

		EnableMetrics:      true,
		EnableCORS:         true,
		CORSAllowedOrigins: []string{"*"},
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by CONFIG_FILE (if any), then environment variables, and validates it
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel))
	}

	if c.Breaker.FailureThreshold <= 0 || c.Breaker.FailureThreshold > 1 {
		errs = append(errs, errors.New("BREAKER_FAILURE_THRESHOLD must lie within (0, 1]"))
	}

	return errors.Join(errs...)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsLambda reports whether the process runs inside AWS Lambda
func (c *Config) IsLambda() bool {
	return c.LambdaFunctionName != ""
}
