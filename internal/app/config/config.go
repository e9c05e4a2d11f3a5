// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DBConfig holds MySQL connection settings.
type DBConfig struct {
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"3306"`
	Name     string `env:"DB_NAME" envDefault:"contacts"`
	// Migrate enables gorm AutoMigrate at startup.
	Migrate bool `env:"RUN_MIGRATIONS" envDefault:"false"`
}

// DSN builds the MySQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// JWTConfig holds token-signing settings.
type JWTConfig struct {
	Secret string `env:"JWT_SECRET"`
	// AccessTTL is the lifetime of bearer access tokens.
	AccessTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"1h"`
	// ConfirmTTL is the lifetime of email-confirmation tokens.
	ConfirmTTL time.Duration `env:"JWT_CONFIRM_TTL" envDefault:"24h"`
}

// SMTPConfig holds settings for the outbound confirmation mailer.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// S3Config holds settings for the avatar object store.
// Endpoint and PublicBaseURL allow pointing at MinIO in development.
type S3Config struct {
	Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket        string `env:"S3_BUCKET" envDefault:"avatars"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	Endpoint      string `env:"S3_ENDPOINT"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// Config is the root configuration for the server process.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`
	// BaseURL is the externally visible URL used in confirmation links.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// RedisAddr enables the user-lookup cache when non-empty.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	DB   DBConfig
	JWT  JWTConfig
	SMTP SMTPConfig
	S3   S3Config
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
