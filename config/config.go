// Package config loads the process configuration and the record schema.
// Configuration is read once at startup and passed explicitly to constructors.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	AppTitle   string `env:"APP_TITLE" envDefault:"Record Management System" validate:"required"`
	Port       string `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	SchemaFile string `env:"SCHEMA_FILE"`
	ExportDir  string `env:"EXPORT_DIR" envDefault:"exports" validate:"required"`

	Database DatabaseConfig
	Audit    AuditConfig
	Logging  LoggingConfig
}

// DatabaseConfig selects the relational store and how to reach it
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite3" validate:"oneof=sqlite3 mysql postgres"`

	// Path is the database file for the sqlite3 driver
	Path string `env:"DB_PATH" envDefault:"records.db" validate:"required_if=Driver sqlite3"`

	Host     string `env:"DB_HOST" envDefault:"localhost" validate:"required_unless=Driver sqlite3"`
	Port     int    `env:"DB_PORT" validate:"gte=0,lte=65535"`
	Name     string `env:"DB_NAME" validate:"required_unless=Driver sqlite3"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

// AuditConfig selects the deletion history sink
type AuditConfig struct {
	Sink string `env:"AUDIT_SINK" envDefault:"file" validate:"oneof=file database"`
	Path string `env:"AUDIT_LOG_PATH" envDefault:"exports/DeletedRecords.txt" validate:"required_if=Sink file"`
}

// LoggingConfig configures the process logger
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// Load reads a .env file when present, then the environment, and validates the result
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Validate checks the struct tags of the configuration
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// String returns a representation safe for logging, with the password masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %q, Driver: %q, Host: %q, Name: %q, Path: %q, Password: [MASKED], AuditSink: %q, SchemaFile: %q}",
		c.Port, c.Database.Driver, c.Database.Host, c.Database.Name, c.Database.Path, c.Audit.Sink, c.SchemaFile)
}
