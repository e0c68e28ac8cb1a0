package config

import (
	"fmt"
	"time"

	"github.com/grimimirg/auth-middleware/internal/secure"
	pkgconfig "github.com/grimimirg/auth-middleware/pkg/config"
)

// Config holds all configuration for the authentication gateway.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"AUTH_HTTP_PORT" envDefault:"8010"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"auth"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"auth_secret"`
	PostgresDB   string `env:"AUTH_DB_NAME" envDefault:"auth_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Kafka
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	EventsEnabled bool     `env:"EVENTS_ENABLED" envDefault:"true"`

	// Tokens
	JWTSecret          string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	AccessTokenExpiry  int    `env:"ACCESS_TOKEN_EXPIRATION_DAYS" envDefault:"1"`
	RefreshTokenExpiry int    `env:"REFRESH_TOKEN_EXPIRATION_DAYS" envDefault:"30"`
	TokenCipherKey     string `env:"TOKEN_CIPHER_KEY" envDefault:"8bytekey"`

	// Tracing
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSample    float64 `env:"OTEL_TRACE_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load auth config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.AccessTokenExpiry < 1 {
		return nil, fmt.Errorf("invalid access token expiry: %d days", cfg.AccessTokenExpiry)
	}
	if cfg.RefreshTokenExpiry < 1 {
		return nil, fmt.Errorf("invalid refresh token expiry: %d days", cfg.RefreshTokenExpiry)
	}
	if len(cfg.TokenCipherKey) != secure.KeySize {
		return nil, fmt.Errorf("TOKEN_CIPHER_KEY must be exactly %d bytes, got %d", secure.KeySize, len(cfg.TokenCipherKey))
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == "change-this-to-a-secure-secret" {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
		if cfg.TokenCipherKey == "8bytekey" {
			return nil, fmt.Errorf("TOKEN_CIPHER_KEY must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
	}

	return cfg, nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}

// AccessTokenTTL returns the access token lifetime as a duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiry) * 24 * time.Hour
}

// RefreshTokenTTL returns the refresh token lifetime as a duration.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpiry) * 24 * time.Hour
}
